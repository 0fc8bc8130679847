package dto

import "monarch-crm-be/internal/model"

type PersonalizeEmailRequest struct {
	EmailBody string `json:"email_body" validate:"required"`
}

type PersonalizeEmailResponse struct {
	EmailBody string `json:"email_body"`
}

type InsightsResponse struct {
	Insight string `json:"insight"`
	Cached  bool   `json:"cached"`
}

type CallScriptResponse struct {
	Script string `json:"script"`
}

type GenerateWebsiteRequest struct {
	Template model.WebsiteTemplate `json:"template" validate:"required,oneof=Professional Modern Minimalist"`
}

type GenerateWebsiteResponse struct {
	WebsiteURL  string        `json:"website_url"`
	HTMLContent string        `json:"html_content"`
	EmailBody   string        `json:"email_body"`
	Lead        *LeadResponse `json:"lead"`
}
