package controller

import (
	"context"
	"time"

	"monarch-crm-be/internal/call"
	"monarch-crm-be/internal/config"
	"monarch-crm-be/internal/dto"
	"monarch-crm-be/internal/model"
	"monarch-crm-be/internal/pkg/logger"
	"monarch-crm-be/internal/repository/memory"
	"monarch-crm-be/internal/service"
	"monarch-crm-be/pkg/events"
	"monarch-crm-be/pkg/genai"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type ICallController interface {
	RegisterRoutes(r fiber.Router)
}

type callController struct {
	repo      *memory.LeadRepository
	cfg       *config.Config
	publisher service.IPublisherService
	logger    logger.ILogger
}

func NewCallController(
	repo *memory.LeadRepository,
	cfg *config.Config,
	publisher service.IPublisherService,
	log logger.ILogger,
) ICallController {
	return &callController{
		repo:      repo,
		cfg:       cfg,
		publisher: publisher,
		logger:    log,
	}
}

func (c *callController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/call/v1")
	h.Use(":id/stream", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get(":id/stream", websocket.New(c.stream))
}

// stream owns one browser connection for the lifetime of a call.
func (c *callController) stream(conn *websocket.Conn) {
	defer conn.Close()

	id, err := uuid.Parse(conn.Params("id"))
	if err != nil {
		conn.WriteJSON(dto.CallStatusFrame{
			Type:   dto.CallFrameStatus,
			Status: string(call.StateEnded),
			Error:  "invalid lead id",
		})
		return
	}

	lead, ok := c.repo.Get(id)
	if !ok {
		conn.WriteJSON(dto.CallStatusFrame{
			Type:   dto.CallFrameStatus,
			Status: string(call.StateEnded),
			Error:  "lead not found",
		})
		return
	}

	session := call.NewSession(call.SessionConfig{
		Lead:     lead,
		Client:   conn,
		Dial:     c.dialUpstream,
		Log:      c.logger,
		OnStatus: c.publishStatus,
	})
	defer session.Close()

	if err := session.Start(); err != nil {
		return
	}

	// Browser read loop. Any read failure means the dashboard went away.
	for {
		var frame dto.CallClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		session.HandleClientFrame(frame)

		select {
		case <-session.Done():
			return
		default:
		}
	}
}

func (c *callController) dialUpstream(systemInstruction string) (call.Upstream, error) {
	return genai.DialLive(c.cfg.Keys.GoogleGemini, genai.LiveSessionConfig{
		Model:             c.cfg.Ai.LiveModel,
		VoiceName:         c.cfg.Ai.VoiceName,
		SystemInstruction: systemInstruction,
	})
}

func (c *callController) publishStatus(lead *model.Lead, state call.State, errMsg string) {
	if c.publisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: events.TypeCallStatus,
		Data: map[string]interface{}{
			"lead_id":   lead.Id.String(),
			"lead_name": lead.Name,
			"status":    string(state),
			"error":     errMsg,
		},
		OccurredAt: time.Now(),
	}
	if err := c.publisher.Publish(context.Background(), evt); err != nil {
		c.logger.Warn("CallController", "Failed to publish call status event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
