package bootstrap

import (
	"context"
	"log"

	"github.com/daohd2003/FRECS-sub006/internal/config"
	"github.com/daohd2003/FRECS-sub006/internal/controller"
	"github.com/daohd2003/FRECS-sub006/internal/handler"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/mailer"
	"github.com/daohd2003/FRECS-sub006/internal/repository/implementation"
	"github.com/daohd2003/FRECS-sub006/internal/repository/unitofwork"
	"github.com/daohd2003/FRECS-sub006/internal/service"
	"github.com/daohd2003/FRECS-sub006/internal/websocket"
	adminEvents "github.com/daohd2003/FRECS-sub006/pkg/admin/events"
	adminPayout "github.com/daohd2003/FRECS-sub006/pkg/admin/payout"
	"github.com/daohd2003/FRECS-sub006/pkg/admin/resolution"
	"github.com/daohd2003/FRECS-sub006/pkg/deposit"
	"github.com/daohd2003/FRECS-sub006/pkg/evidence"
	pktNats "github.com/daohd2003/FRECS-sub006/pkg/nats"
	pkgPayout "github.com/daohd2003/FRECS-sub006/pkg/payout"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	ViolationController controller.IViolationController
	DisputeController   controller.IDisputeController
	RefundController    controller.IRefundController
	AdminController     controller.IAdminController

	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
	NotificationService *service.NotificationService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core infrastructure
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)

	// 2. Event bus. NATS when configured, otherwise an in-process
	// watermill channel so the notification pipeline still runs.
	var (
		natsPub        *pktNats.Publisher
		natsSub        *pktNats.Subscriber
		eventPublisher adminEvents.Publisher
		pubSub         *gochannel.GoChannel
	)
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		}
		eventPublisher = adminEvents.NewNatsPublisher(natsPub, sysLogger)
	} else {
		pubSub = gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
		eventPublisher = adminEvents.NewWatermillPublisher(pubSub, sysLogger)
	}

	// Redis (optional, clusters the websocket fanout)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Dispute domain components
	evidenceStore, err := evidence.NewLocalStore(cfg.Dispute.UploadDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize evidence store: %v", err)
	}

	strategy, err := deposit.ParseStrategy(cfg.Dispute.PenaltyAggregation)
	if err != nil {
		log.Printf("[WARN] %v. Falling back to overwrite", err)
		strategy = deposit.AggregateOverwrite
	}
	reconciler := deposit.NewReconciler(strategy, sysLogger)

	resolutionEngine := resolution.NewEngine(reconciler, sysLogger, eventPublisher)

	var payoutGateway pkgPayout.Gateway
	if cfg.Payout.IrisAPIKey != "" {
		payoutGateway = pkgPayout.NewMidtransGateway(cfg.Payout.IrisAPIKey, cfg.Payout.IsProduction)
		log.Printf("[INFO] Payout gateway: midtrans iris (production=%v)", cfg.Payout.IsProduction)
	} else {
		log.Printf("[INFO] Payout gateway not configured, refunds settle manually")
	}
	payoutProcessor := adminPayout.NewProcessor(payoutGateway, sysLogger, eventPublisher)

	// 4. Services
	violationService := service.NewViolationService(uowFactory, evidenceStore, eventPublisher, sysLogger)
	disputeService := service.NewDisputeService(uowFactory, reconciler, eventPublisher, sysLogger)
	refundService := service.NewRefundService(uowFactory)
	adminService := service.NewAdminService(uowFactory, sysLogger, resolutionEngine, payoutProcessor)

	// 5. Notification system
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, emailService, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	} else if pubSub != nil {
		if err := notifService.StartWatermill(context.Background(), pubSub); err != nil {
			log.Printf("[WARN] Failed to start watermill consumer: %v", err)
		}
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		ViolationController: controller.NewViolationController(violationService),
		DisputeController:   controller.NewDisputeController(disputeService),
		RefundController:    controller.NewRefundController(refundService),
		AdminController:     controller.NewAdminController(adminService),

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		NotificationService: notifService,

		Logger: sysLogger,
	}
}
