package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"monarch-crm-be/internal/dto"
	"monarch-crm-be/internal/model"
	"monarch-crm-be/internal/pkg/logger"
	"monarch-crm-be/internal/repository/memory"
	"monarch-crm-be/pkg/events"
	"monarch-crm-be/pkg/genai"
	"monarch-crm-be/pkg/microsite"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ContentGenerator is the slice of the AI client the content flows need.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type IContentService interface {
	PersonalizeEmail(ctx context.Context, id uuid.UUID, req *dto.PersonalizeEmailRequest) (*dto.PersonalizeEmailResponse, error)
	Insights(ctx context.Context, id uuid.UUID) (*dto.InsightsResponse, error)
	CallScript(ctx context.Context, id uuid.UUID) (*dto.CallScriptResponse, error)
	GenerateWebsite(ctx context.Context, id uuid.UUID, req *dto.GenerateWebsiteRequest) (*dto.GenerateWebsiteResponse, error)
}

type contentService struct {
	repo        *memory.LeadRepository
	cache       *memory.InsightCache
	generator   ContentGenerator
	synthesizer *microsite.Synthesizer
	publisher   IPublisherService
	logger      logger.ILogger
}

func NewContentService(
	repo *memory.LeadRepository,
	cache *memory.InsightCache,
	generator ContentGenerator,
	synthesizer *microsite.Synthesizer,
	publisher IPublisherService,
	log logger.ILogger,
) IContentService {
	return &contentService{
		repo:        repo,
		cache:       cache,
		generator:   generator,
		synthesizer: synthesizer,
		publisher:   publisher,
		logger:      log,
	}
}

// attemptWithFallback runs one generation attempt and degrades to the given
// fallback on any failure. Single shot, no retry: content is decorative, the
// workflow must keep moving.
func attemptWithFallback[T any](log logger.ILogger, op string, fallback T, attempt func() (T, error)) T {
	result, err := attempt()
	if err != nil {
		log.Warn("ContentService", fmt.Sprintf("%s failed, serving fallback", op), map[string]interface{}{
			"error": err.Error(),
		})
		return fallback
	}
	return result
}

func (s *contentService) PersonalizeEmail(ctx context.Context, id uuid.UUID, req *dto.PersonalizeEmailRequest) (*dto.PersonalizeEmailResponse, error) {
	lead, ok := s.repo.Get(id)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "lead not found")
	}

	prompt := fmt.Sprintf(`I am Kashmir Cortave, a luxury real estate agent at Monarch & Co.
I am reaching out to %s.

Original Draft: "%s"

Task: Rewrite this outreach to be sophisticated, prestigious, and high-converting.

CRITICAL: If there is a link (e.g., https://monarch.co/...) in the draft, treat it as an exclusive, private portfolio created specifically for them. Frame it as a high-value digital asset.

Return ONLY the rewritten body text.`, lead.Name, req.EmailBody)

	body := attemptWithFallback(s.logger, "email personalization", req.EmailBody, func() (string, error) {
		return s.generator.Generate(ctx, prompt)
	})

	return &dto.PersonalizeEmailResponse{EmailBody: body}, nil
}

func (s *contentService) Insights(ctx context.Context, id uuid.UUID) (*dto.InsightsResponse, error) {
	lead, ok := s.repo.Get(id)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "lead not found")
	}

	cacheKey := id.String()
	if cached, hit := s.cache.Get(cacheKey); hit {
		return &dto.InsightsResponse{Insight: cached, Cached: true}, nil
	}

	prompt := fmt.Sprintf(
		"Analyze this CRM lead for Kashmir Cortave (Monarch & Co): %s, Status: %s. Provide a 2-sentence tactical summary and a 'luxury winning strategy' for conversion.",
		lead.Name, lead.Status,
	)

	insight := attemptWithFallback(s.logger, "lead analysis", "Failed to analyze lead.", func() (string, error) {
		return s.generator.Generate(ctx, prompt)
	})

	// Fallback text is not worth caching; the next open should retry.
	if insight != "Failed to analyze lead." {
		s.cache.Save(cacheKey, insight)
	}

	return &dto.InsightsResponse{Insight: insight, Cached: false}, nil
}

func (s *contentService) CallScript(ctx context.Context, id uuid.UUID) (*dto.CallScriptResponse, error) {
	lead, ok := s.repo.Get(id)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "lead not found")
	}

	prompt := fmt.Sprintf(`Act as a master sales coach for Kashmir Cortave of Monarch & Co.
Create a professional 45-second consultative phone call script for a lead named %s (Pipeline Status: %s).

The objective is to pitch Monarch & Co's proprietary AI Voice Integration.

The script MUST include these specific sections:
1. THE PRESTIGIOUS HOOK: Introduction as Kashmir from Monarch & Co.
2. THE MONARCH VALUE: Mention 24/7 high-touch engagement, zero lead friction, and how AI ensures luxury clients never wait for a callback.
3. DISCOVERY QUESTIONS: Include 2-3 qualifying questions to ask the lead (e.g., current inquiry volume, typical response time, or current tech stack gaps).
4. THE EXCLUSIVE CLOSE: A low-friction request for a private 10-minute demo of the system.

Tone: Sophisticated, authoritative, and outcome-oriented.
Return ONLY the script text, formatted with section headers.`, lead.Name, lead.Status)

	script := attemptWithFallback(s.logger, "call script generation", "Call script generation failed.", func() (string, error) {
		return s.generator.Generate(ctx, prompt)
	})

	return &dto.CallScriptResponse{Script: script}, nil
}

func (s *contentService) GenerateWebsite(ctx context.Context, id uuid.UUID, req *dto.GenerateWebsiteRequest) (*dto.GenerateWebsiteResponse, error) {
	lead, ok := s.repo.Get(id)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "lead not found")
	}

	listing := s.generateListing(ctx, lead.Name, req.Template)

	html, err := s.synthesizer.Synthesize(listing)
	if err != nil {
		return nil, err
	}

	accessURL := s.synthesizer.NewAccessURL()
	emailBody := microsite.InjectAccessURL(lead.EmailBody, accessURL)

	generated := true
	updated, _ := s.repo.Update(id, memory.LeadPatch{
		HTMLContent:      &html,
		WebsiteURL:       &accessURL,
		WebsiteGenerated: &generated,
		EmailBody:        &emailBody,
		SelectedTemplate: &req.Template,
	})

	s.logger.Info("ContentService", "Portfolio site generated", map[string]interface{}{
		"lead_id":  id.String(),
		"template": string(req.Template),
		"url":      accessURL,
	})

	if s.publisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeSiteCreated,
			Data: map[string]interface{}{
				"lead_id":   id.String(),
				"lead_name": lead.Name,
				"url":       accessURL,
			},
			OccurredAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ContentService", "Failed to publish site event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.GenerateWebsiteResponse{
		WebsiteURL:  accessURL,
		HTMLContent: html,
		EmailBody:   emailBody,
		Lead:        toLeadResponse(updated),
	}, nil
}

func (s *contentService) generateListing(ctx context.Context, leadName string, template model.WebsiteTemplate) *microsite.Listing {
	prompt := fmt.Sprintf(`Generate luxury real estate listing data for a personalized demo website for %s.
The site is branded for Kashmir Cortave at Monarch & Co. Visual direction: %s.

Return ONLY a JSON object with EXACTLY these fields:
- page_title: A title like "%s | The Monarch Collection"
- listing_price: A price like "$12,450,000"
- listing_address: A premium street address (e.g., "702 River Oaks Blvd")
- listing_city: A luxury city (e.g., "Houston", "Beverly Hills", "Aspen")
- listing_state: State abbreviation
- listing_beds: Number of beds (e.g., "6")
- listing_baths: Number of baths (e.g., "7")
- listing_sqft: Square footage (e.g., "11,500")
- listing_image_url: A high-res modern luxury mansion URL.
- testimonials: An array of 3 objects { name: string, quote: string, role: string } praising Kashmir Cortave's use of AI at Monarch & Co.

Style: Prestigious, High-End.`, leadName, template, leadName)

	return attemptWithFallback(s.logger, "site content generation", microsite.DefaultListing(leadName), func() (*microsite.Listing, error) {
		raw, err := s.generator.GenerateJSON(ctx, prompt)
		if err != nil {
			return nil, err
		}
		clean, err := genai.ExtractJSONObject(raw)
		if err != nil {
			return nil, err
		}
		var listing microsite.Listing
		if err := json.Unmarshal([]byte(clean), &listing); err != nil {
			return nil, fmt.Errorf("listing payload did not parse: %w", err)
		}
		return &listing, nil
	})
}
