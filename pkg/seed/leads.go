package seed

import (
	"fmt"
	"time"

	"monarch-crm-be/internal/model"
	"monarch-crm-be/internal/repository/memory"

	"github.com/google/uuid"
)

type demoLead struct {
	name   string
	email  string
	phone  string
	status model.LeadStatus
}

var demoLeads = []demoLead{
	{"Victoria Langford", "victoria.langford@estates.com", "(281) 555-0142", model.LeadStatusNew},
	{"Preston Whitmore", "p.whitmore@capitalgrp.com", "(713) 555-0188", model.LeadStatusNew},
	{"Isabella Marchetti", "isabella@marchettiholdings.com", "N/A", model.LeadStatusReady},
	{"Grant Sterling", "grant.sterling@sterlingventures.com", "(832) 555-0107", model.LeadStatusSent},
	{"Olivia Rothschild", "olivia.r@privateoffice.co", "(346) 555-0163", model.LeadStatusResponded},
}

// Leads loads a small demo pipeline so a fresh instance has something on the
// dashboard. Insertion order is reversed so the first demo lead ends up on
// top of the prepend-ordered store.
func Leads(repo *memory.LeadRepository) int {
	for i := len(demoLeads) - 1; i >= 0; i-- {
		d := demoLeads[i]
		repo.Create(&model.Lead{
			Id:           uuid.New(),
			Name:         d.name,
			Email:        d.email,
			Phone:        d.phone,
			Status:       d.status,
			EmailSubject: fmt.Sprintf("Luxury Portfolio: Exclusive Update for %s", d.name),
			EmailBody:    fmt.Sprintf("Hi %s,\n\nI was reviewing your property profile and wanted to reach out from Monarch & Co.\n\nAt Monarch & Co, we're implementing advanced AI voice systems to ensure our clients' luxury listings receive 24/7 high-touch engagement. I'd love to show you how this technology can elevate your experience.\n\nAre you available for a brief conversation this week?\n\nBest regards,\n\nKashmir Cortave\nMonarch & Co\n(713) 299-2850", d.name),
			CreatedAt:    time.Now(),
		})
	}
	return len(demoLeads)
}
