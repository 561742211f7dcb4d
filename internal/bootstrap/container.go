package bootstrap

import (
	"log"

	"writinghub-be/internal/config"
	"writinghub-be/internal/controller"
	"writinghub-be/internal/pkg/logger"
	"writinghub-be/internal/pkg/mailer"
	"writinghub-be/internal/repository/memory"
	"writinghub-be/internal/repository/unitofwork"
	"writinghub-be/internal/service"
	"writinghub-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	ChatController         controller.IChatController
	CallbackController     controller.ICallbackController
	NotificationController controller.INotificationController

	// Background services (run by main.go)
	NotificationService service.INotificationService
	Hub                 *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Redis is optional: presence fallback and hub fan-out degrade to
	// single-instance behavior without it.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Invalid REDIS_URL, running without Redis: %v", err)
		} else {
			rdb = redis.NewClient(opts)
		}
	}

	// Typing presence store
	var presenceStore memory.PresenceStore
	if cfg.Chat.PresenceBackend == "redis" && rdb != nil {
		presenceStore = memory.NewRedisPresenceStore(rdb, service.PresenceEntryTTL)
		log.Printf("[INFO] Using presence store: REDIS")
	} else {
		presenceStore = memory.NewCachePresenceStore(service.PresenceEntryTTL, service.PresenceSweepInterval)
		log.Printf("[INFO] Using presence store: MEMORY")
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.AdminEmail,
	)

	hub := websocket.NewHub(rdb, sysLogger)

	// Services
	publisherService := service.NewPublisherService(pubSub)
	chatService := service.NewChatService(uowFactory, publisherService, sysLogger)
	presenceService := service.NewPresenceService(presenceStore, sysLogger)
	callbackService := service.NewCallbackService(uowFactory, publisherService, sysLogger)
	authService := service.NewAuthService(&cfg.Admin)
	notificationService := service.NewNotificationService(
		pubSub,
		uowFactory,
		hub,
		emailService,
		cfg.App.ClientURL,
		sysLogger,
	)

	return &Container{
		AuthController:         controller.NewAuthController(authService),
		ChatController:         controller.NewChatController(chatService, presenceService),
		CallbackController:     controller.NewCallbackController(callbackService),
		NotificationController: controller.NewNotificationController(notificationService, hub),
		NotificationService:    notificationService,
		Hub:                    hub,
		Logger:                 sysLogger,
	}
}
