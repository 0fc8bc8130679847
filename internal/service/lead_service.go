package service

import (
	"context"
	"fmt"
	"time"

	"monarch-crm-be/internal/dto"
	"monarch-crm-be/internal/model"
	"monarch-crm-be/internal/pkg/logger"
	"monarch-crm-be/internal/pkg/mailer"
	"monarch-crm-be/internal/repository/memory"
	"monarch-crm-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const priorityLeadLimit = 5

type ILeadService interface {
	Create(ctx context.Context, req *dto.CreateLeadRequest) (*dto.LeadResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.LeadResponse, error)
	List(ctx context.Context, search, status string) (*dto.ListLeadsResponse, error)
	Update(ctx context.Context, req *dto.UpdateLeadRequest) (*dto.LeadResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CycleStatus(ctx context.Context, id uuid.UUID) (*dto.LeadResponse, error)
	Stats(ctx context.Context) (*model.DashboardStats, error)
	Priority(ctx context.Context) ([]*dto.LeadResponse, error)
	ExecuteCampaign(ctx context.Context, req *dto.ExecuteCampaignRequest) (*dto.LeadResponse, error)
}

type leadService struct {
	repo         *memory.LeadRepository
	emailService mailer.IEmailService
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewLeadService(
	repo *memory.LeadRepository,
	emailService mailer.IEmailService,
	publisher IPublisherService,
	log logger.ILogger,
) ILeadService {
	return &leadService{
		repo:         repo,
		emailService: emailService,
		publisher:    publisher,
		logger:       log,
	}
}

func (s *leadService) Create(_ context.Context, req *dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	phone := req.Phone
	if phone == "" {
		phone = "N/A"
	}

	lead := &model.Lead{
		Id:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        phone,
		Status:       model.LeadStatusNew,
		EmailSubject: fmt.Sprintf("Luxury Portfolio: Exclusive Update for %s", req.Name),
		EmailBody:    defaultOutreachDraft(req.Name),
		CreatedAt:    time.Now(),
	}
	s.repo.Create(lead)

	s.logger.Info("LeadService", "Lead created", map[string]interface{}{
		"lead_id": lead.Id.String(),
		"name":    lead.Name,
	})
	return toLeadResponse(lead), nil
}

func (s *leadService) Show(_ context.Context, id uuid.UUID) (*dto.LeadResponse, error) {
	lead, ok := s.repo.Get(id)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "lead not found")
	}
	return toLeadResponse(lead), nil
}

func (s *leadService) List(_ context.Context, search, status string) (*dto.ListLeadsResponse, error) {
	leads := s.repo.List(search, status)
	res := make([]*dto.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		res = append(res, toLeadResponse(lead))
	}
	return &dto.ListLeadsResponse{Leads: res, Total: len(res)}, nil
}

func (s *leadService) Update(_ context.Context, req *dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unknown pipeline status")
	}

	lead, ok := s.repo.Update(req.Id, memory.LeadPatch{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Status:           req.Status,
		EmailSubject:     req.EmailSubject,
		EmailBody:        req.EmailBody,
		SelectedTemplate: req.SelectedTemplate,
	})
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "lead not found")
	}
	return toLeadResponse(lead), nil
}

func (s *leadService) Delete(_ context.Context, id uuid.UUID) error {
	if !s.repo.Delete(id) {
		return fiber.NewError(fiber.StatusNotFound, "lead not found")
	}
	s.logger.Info("LeadService", "Lead archived", map[string]interface{}{"lead_id": id.String()})
	return nil
}

// CycleStatus advances a lead one step through the pipeline, wrapping back
// to New after Converted.
func (s *leadService) CycleStatus(_ context.Context, id uuid.UUID) (*dto.LeadResponse, error) {
	lead, ok := s.repo.Get(id)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "lead not found")
	}

	next := lead.Status.Next()
	updated, _ := s.repo.Update(id, memory.LeadPatch{Status: &next})
	return toLeadResponse(updated), nil
}

func (s *leadService) Stats(_ context.Context) (*model.DashboardStats, error) {
	leads := s.repo.List("", "")
	stats := &model.DashboardStats{TotalLeads: len(leads)}
	for _, lead := range leads {
		switch lead.Status {
		case model.LeadStatusNew:
			stats.NewLeads++
		case model.LeadStatusReady:
			stats.ReadyLeads++
		case model.LeadStatusSent:
			stats.EmailsSent++
		}
	}
	return stats, nil
}

// Priority returns the first few New leads in store order, the ones the
// dashboard surfaces as hot.
func (s *leadService) Priority(_ context.Context) ([]*dto.LeadResponse, error) {
	leads := s.repo.List("", string(model.LeadStatusNew))
	if len(leads) > priorityLeadLimit {
		leads = leads[:priorityLeadLimit]
	}
	res := make([]*dto.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		res = append(res, toLeadResponse(lead))
	}
	return res, nil
}

func (s *leadService) ExecuteCampaign(ctx context.Context, req *dto.ExecuteCampaignRequest) (*dto.LeadResponse, error) {
	lead, ok := s.repo.Get(req.Id)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "lead not found")
	}

	status := model.LeadStatusSent
	emailSent := true
	updated, _ := s.repo.Update(req.Id, memory.LeadPatch{
		EmailBody: &req.EmailBody,
		Status:    &status,
		EmailSent: &emailSent,
	})

	// Real dispatch is best effort; the campaign is recorded either way.
	if s.emailService != nil {
		if err := s.emailService.SendCampaign(lead.Email, lead.Name, lead.EmailSubject, req.EmailBody); err != nil {
			s.logger.Warn("LeadService", "Campaign email dispatch failed", map[string]interface{}{
				"lead_id": lead.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	if s.publisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeCampaignSent,
			Data: map[string]interface{}{
				"lead_id":   lead.Id.String(),
				"lead_name": lead.Name,
			},
			OccurredAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("LeadService", "Failed to publish campaign event", map[string]interface{}{"error": err.Error()})
		}
	}

	return toLeadResponse(updated), nil
}

func defaultOutreachDraft(name string) string {
	return fmt.Sprintf(`Hi %s,

I was reviewing your property profile and wanted to reach out from Monarch & Co.

At Monarch & Co, we're implementing advanced AI voice systems to ensure our clients' luxury listings receive 24/7 high-touch engagement. I'd love to show you how this technology can elevate your experience.

Are you available for a brief conversation this week?

Best regards,

Kashmir Cortave
Monarch & Co
(713) 299-2850`, name)
}

func toLeadResponse(lead *model.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		Id:               lead.Id,
		Name:             lead.Name,
		Email:            lead.Email,
		Phone:            lead.Phone,
		Status:           lead.Status,
		EmailSubject:     lead.EmailSubject,
		EmailBody:        lead.EmailBody,
		EmailSent:        lead.EmailSent,
		WebsiteGenerated: lead.WebsiteGenerated,
		WebsiteURL:       lead.WebsiteURL,
		HTMLContent:      lead.HTMLContent,
		SelectedTemplate: lead.SelectedTemplate,
		CreatedAt:        lead.CreatedAt,
	}
}
