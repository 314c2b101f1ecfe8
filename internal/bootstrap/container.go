package bootstrap

import (
	"context"
	"log"
	"time"

	"photopro-be/internal/config"
	"photopro-be/internal/controller"
	"photopro-be/internal/pkg/logger"
	"photopro-be/internal/pkg/mailer"
	"photopro-be/internal/repository/unitofwork"
	"photopro-be/internal/service"
	"photopro-be/pkg/airwallex"
	"photopro-be/pkg/store"

	pktNats "photopro-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const paymentReceiptTopic = "payment.receipts"

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	PlanController    controller.IPlanController
	PaymentController controller.IPaymentController
	ProjectController controller.IProjectController
	UsageController   controller.IUsageController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	AuditService    service.IAuditService

	// Seeding entry point, also used by cmd/seed
	PlanService service.IPlanService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	webhookGuard := store.NewWebhookGuard(rdb, 24*time.Hour)

	// Airwallex gateway
	awx := airwallex.NewClient(cfg.Airwallex.ClientID, cfg.Airwallex.APIKey, cfg.Airwallex.IsProduction)

	// 3. Services
	publisherService := service.NewPublisherService(paymentReceiptTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, paymentReceiptTopic, emailService)

	// A nil *Subscriber must not end up behind a non-nil interface
	var eventStream service.EventStream
	if natsSub != nil {
		eventStream = natsSub
	}
	auditService := service.NewAuditService(eventStream, sysLogger)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, sysLogger)
	userService := service.NewUserService(uowFactory)
	planService := service.NewPlanService(uowFactory)
	paymentService := service.NewPaymentService(
		uowFactory,
		awx,
		webhookGuard,
		cfg.Airwallex.WebhookSecret,
		cfg.App.ClientURL,
		natsPub,
		publisherService,
		sysLogger,
	)
	projectService := service.NewProjectService(uowFactory)
	usageService := service.NewUsageService(uowFactory)

	// Seed the catalog on first boot so pricing is never empty
	if seeded, err := planService.EnsureDefaultPlans(context.Background()); err != nil {
		log.Printf("[WARN] Failed to ensure default plans: %v", err)
	} else if seeded > 0 {
		log.Printf("[INFO] Seeded %d default subscription plans", seeded)
	}

	// 4. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService, userService),
		PlanController:    controller.NewPlanController(planService),
		PaymentController: controller.NewPaymentController(paymentService),
		ProjectController: controller.NewProjectController(projectService),
		UsageController:   controller.NewUsageController(usageService),

		ConsumerService: consumerService,
		AuditService:    auditService,
		PlanService:     planService,
		Logger:          sysLogger,
	}
}
