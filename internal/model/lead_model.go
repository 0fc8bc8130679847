package model

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus is the fixed ordered pipeline stage.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New Lead"
	LeadStatusReady     LeadStatus = "Ready"
	LeadStatusSent      LeadStatus = "Sent"
	LeadStatusResponded LeadStatus = "Responded"
	LeadStatusConverted LeadStatus = "Converted"
)

// PipelineOrder is the cycling order for the status toggle. The last stage
// wraps back to the first.
var PipelineOrder = []LeadStatus{
	LeadStatusNew,
	LeadStatusReady,
	LeadStatusSent,
	LeadStatusResponded,
	LeadStatusConverted,
}

// Next returns the following pipeline stage, wrapping around. Unknown
// statuses restart the pipeline.
func (s LeadStatus) Next() LeadStatus {
	for i, status := range PipelineOrder {
		if status == s {
			return PipelineOrder[(i+1)%len(PipelineOrder)]
		}
	}
	return PipelineOrder[0]
}

// Valid reports whether s is one of the five pipeline stages.
func (s LeadStatus) Valid() bool {
	for _, status := range PipelineOrder {
		if status == s {
			return true
		}
	}
	return false
}

type WebsiteTemplate string

const (
	TemplateProfessional WebsiteTemplate = "Professional"
	TemplateModern       WebsiteTemplate = "Modern"
	TemplateMinimalist   WebsiteTemplate = "Minimalist"
)

// Lead is a prospective client tracked through the pipeline. All lead state
// is volatile for the process lifetime.
type Lead struct {
	Id               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Status           LeadStatus      `json:"status"`
	EmailSubject     string          `json:"email_subject"`
	EmailBody        string          `json:"email_body"`
	EmailSent        bool            `json:"email_sent"`
	WebsiteGenerated bool            `json:"website_generated"`
	WebsiteURL       string          `json:"website_url,omitempty"`
	HTMLContent      string          `json:"html_content,omitempty"`
	SelectedTemplate WebsiteTemplate `json:"selected_template,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// DashboardStats is derived from the store on every read, never stored.
type DashboardStats struct {
	TotalLeads int `json:"total_leads"`
	NewLeads   int `json:"new_leads"`
	ReadyLeads int `json:"ready_leads"`
	EmailsSent int `json:"emails_sent"`
}
