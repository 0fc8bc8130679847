package dto

import (
	"time"

	"monarch-crm-be/internal/model"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

type UpdateLeadRequest struct {
	Id               uuid.UUID
	Name             *string                `json:"name"`
	Email            *string                `json:"email"`
	Phone            *string                `json:"phone"`
	Status           *model.LeadStatus      `json:"status"`
	EmailSubject     *string                `json:"email_subject"`
	EmailBody        *string                `json:"email_body"`
	SelectedTemplate *model.WebsiteTemplate `json:"selected_template"`
}

type ExecuteCampaignRequest struct {
	Id        uuid.UUID
	EmailBody string `json:"email_body" validate:"required"`
}

type LeadResponse struct {
	Id               uuid.UUID             `json:"id"`
	Name             string                `json:"name"`
	Email            string                `json:"email"`
	Phone            string                `json:"phone"`
	Status           model.LeadStatus      `json:"status"`
	EmailSubject     string                `json:"email_subject"`
	EmailBody        string                `json:"email_body"`
	EmailSent        bool                  `json:"email_sent"`
	WebsiteGenerated bool                  `json:"website_generated"`
	WebsiteURL       string                `json:"website_url,omitempty"`
	HTMLContent      string                `json:"html_content,omitempty"`
	SelectedTemplate model.WebsiteTemplate `json:"selected_template,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

type ListLeadsResponse struct {
	Leads []*LeadResponse `json:"leads"`
	Total int             `json:"total"`
}
