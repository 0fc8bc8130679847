package bootstrap

import (
	"context"
	"log"

	"monarch-crm-be/internal/config"
	"monarch-crm-be/internal/controller"
	"monarch-crm-be/internal/handler"
	"monarch-crm-be/internal/pkg/logger"
	"monarch-crm-be/internal/pkg/mailer"
	"monarch-crm-be/internal/repository/memory"
	"monarch-crm-be/internal/service"
	"monarch-crm-be/internal/websocket"
	"monarch-crm-be/pkg/genai"
	"monarch-crm-be/pkg/microsite"
	"monarch-crm-be/pkg/seed"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const eventTopic = "crm_events"

type Container struct {
	// Controllers
	LeadController    controller.ILeadController
	ContentController controller.IContentController
	CallController    controller.ICallController

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Println("[WARN] SMTP not configured, campaigns are recorded without real dispatch")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Storage
	leadRepo := memory.NewLeadRepository()
	insightCache := memory.NewInsightCache()

	if cfg.App.SeedDemoData {
		count := seed.Leads(leadRepo)
		log.Printf("[INFO] Seeded %d demo leads", count)
	}

	// 4. AI + Microsite
	generator := genai.NewClient(cfg.Keys.GoogleGemini, cfg.Ai.GenerationModel)
	if cfg.Keys.GoogleGemini == "" {
		log.Println("[WARN] GOOGLE_GEMINI_API_KEY not set, content generation will serve fallbacks")
	}

	synthesizer, err := microsite.NewSynthesizer()
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize microsite synthesizer: %v", err)
	}

	// 5. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()

	// 6. Services
	publisherService := service.NewPublisherService(eventTopic, pubSub)
	leadService := service.NewLeadService(leadRepo, emailService, publisherService, sysLogger)
	contentService := service.NewContentService(leadRepo, insightCache, generator, synthesizer, publisherService, sysLogger)

	notifService := service.NewNotificationService(pubSub, eventTopic, wsHub, wsLogger)
	if err := notifService.Start(context.Background()); err != nil {
		log.Printf("[WARN] Notification service failed to start: %v", err)
	}

	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 7. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		LeadController:      controller.NewLeadController(leadService),
		ContentController:   controller.NewContentController(contentService),
		CallController:      controller.NewCallController(leadRepo, cfg, publisherService, sysLogger),
	}
}
