package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryapp "fitout/internal/application/delivery"
	"fitout/internal/application/issue/usecases"
	notificationapp "fitout/internal/application/notification"
	"fitout/internal/domain/issue"
	"fitout/internal/domain/shared/events"
	"fitout/internal/infrastructure/ai"
	"fitout/internal/infrastructure/config"
	"fitout/internal/infrastructure/database"
	"fitout/internal/infrastructure/email"
	"fitout/internal/infrastructure/imap"
	"fitout/internal/infrastructure/repository"
	"fitout/internal/infrastructure/scheduler"
	"fitout/internal/shared/goroutine"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/token"
)

// pooledInboundHandler pushes matched vendor replies onto a bounded worker
// pool so slow AI drafting calls cannot stall the mailbox poll loop.
type pooledInboundHandler struct {
	pool *goroutine.Pool
	uc   *usecases.HandleInboundUseCase
}

func (h *pooledInboundHandler) HandleInbound(_ context.Context, iss *issue.Issue, mail *imap.InboundEmail) error {
	return h.pool.Submit("inbound:"+iss.SID(), func(taskCtx context.Context) error {
		return h.uc.HandleInbound(taskCtx, iss, mail)
	})
}

func main() {
	// Parse environment from command line or env variable
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting fitout worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	// Repositories
	issueRepo := repository.NewIssueRepository(database.Get())
	messageRepo := repository.NewMessageRepository(database.Get())
	vendorRepo := repository.NewVendorRepository(database.Get())
	apartmentRepo := repository.NewApartmentRepository(database.Get())
	orderRepo := repository.NewOrderRepository(database.Get())
	deliveryRepo := repository.NewDeliveryRepository(database.Get())
	notificationRepo := repository.NewNotificationRepository(database.Get())
	userRepo := repository.NewUserRepository(database.Get())

	// Application services
	notificationService := notificationapp.NewService(notificationRepo, userRepo, messageRepo, log)
	deliveryService := deliveryapp.NewService(deliveryRepo, orderRepo, notificationService, log)

	// Outbound email and AI drafting
	signer, err := token.NewSigner(cfg.Email.TokenSecret)
	if err != nil {
		logger.Fatal("failed to create token signer", "error", err)
	}
	mailer := email.NewSMTPMailer(&cfg.Email)
	composer := email.NewComposer(mailer, messageRepo, signer, cfg.Email.FromName, log)

	drafter, err := ai.NewDrafter(&cfg.AI, log)
	if err != nil {
		logger.Fatal("failed to create AI drafter", "error", err)
	}

	dispatcher := events.NewInMemoryEventDispatcher(256, log)
	if err := dispatcher.Start(); err != nil {
		logger.Fatal("failed to start event dispatcher", "error", err)
	}
	if err := usecases.RegisterActivityLog(dispatcher, log); err != nil {
		logger.Fatal("failed to register activity log", "error", err)
	}

	handleInbound := usecases.NewHandleInboundUseCase(
		issueRepo, messageRepo, vendorRepo, apartmentRepo,
		drafter, composer, notificationService, dispatcher,
		cfg.AI.AutoApprove, cfg.AI.ConfidenceThreshold, log,
	)

	pool := goroutine.NewPool(
		"ai-draft",
		cfg.Worker.AIPoolSize,
		time.Duration(cfg.Worker.AITaskTimeoutSecs)*time.Second,
		log,
	)
	pool.Start()

	// Inbound mail pipeline
	imapClient := imap.NewClient(&cfg.IMAP, log)
	matcher := imap.NewMatcher(issueRepo, signer, log)
	poller := imap.NewPoller(
		imapClient, matcher, messageRepo,
		&pooledInboundHandler{pool: pool, uc: handleInbound},
		cfg.IMAP.FetchWindow, log,
	)

	manager, err := scheduler.NewManager(log)
	if err != nil {
		logger.Fatal("failed to create scheduler", "error", err)
	}

	pollInterval := time.Duration(cfg.IMAP.PollIntervalSeconds) * time.Second
	if err := manager.RegisterInboundMailJob(poller, pollInterval); err != nil {
		logger.Fatal("failed to register inbound mail job", "error", err)
	}
	if err := manager.RegisterPendingApprovalReminderJob(notificationService); err != nil {
		logger.Fatal("failed to register pending approval reminder job", "error", err)
	}
	if err := manager.RegisterDeliverySweepJob(deliveryService); err != nil {
		logger.Fatal("failed to register delivery sweep job", "error", err)
	}

	manager.Start()
	log.Infow("worker started", "jobs", len(manager.Jobs()), "ai_pool_size", cfg.Worker.AIPoolSize)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infow("received shutdown signal", "signal", sig.String())

	if err := manager.Stop(); err != nil {
		log.Errorw("scheduler shutdown failed", "error", err)
	}
	pool.Shutdown(30 * time.Second)
	if err := dispatcher.Stop(); err != nil {
		log.Errorw("event dispatcher shutdown failed", "error", err)
	}

	log.Info("worker exited gracefully")
}
