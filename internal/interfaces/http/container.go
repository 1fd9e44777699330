package http

import (
	"fmt"

	"gorm.io/gorm"

	apartmentapp "fitout/internal/application/apartment"
	clientapp "fitout/internal/application/client"
	deliveryapp "fitout/internal/application/delivery"
	"fitout/internal/application/issue/usecases"
	notificationapp "fitout/internal/application/notification"
	orderapp "fitout/internal/application/order"
	paymentapp "fitout/internal/application/payment"
	productapp "fitout/internal/application/product"
	userapp "fitout/internal/application/user"
	vendorapp "fitout/internal/application/vendor"
	"fitout/internal/domain/shared/events"
	"fitout/internal/infrastructure/ai"
	"fitout/internal/infrastructure/auth"
	"fitout/internal/infrastructure/cache"
	"fitout/internal/infrastructure/config"
	"fitout/internal/infrastructure/email"
	"fitout/internal/infrastructure/permission"
	"fitout/internal/infrastructure/ratelimit"
	"fitout/internal/infrastructure/repository"
	"fitout/internal/interfaces/http/handlers"
	issuehandlers "fitout/internal/interfaces/http/handlers/issue"
	"fitout/internal/interfaces/http/middleware"
	"fitout/internal/shared/db"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/token"
)

// Container wires repositories, services, use cases and handlers for the
// HTTP server. Construction is fail-fast: a broken dependency surfaces at
// startup, not on the first request.
type Container struct {
	AuthHandler         *handlers.AuthHandler
	ClientHandler       *handlers.ClientHandler
	ApartmentHandler    *handlers.ApartmentHandler
	VendorHandler       *handlers.VendorHandler
	ProductHandler      *handlers.ProductHandler
	OrderHandler        *handlers.OrderHandler
	DeliveryHandler     *handlers.DeliveryHandler
	PaymentHandler      *handlers.PaymentHandler
	NotificationHandler *handlers.NotificationHandler
	UserHandler         *handlers.UserHandler
	IssueHandler        *issuehandlers.Handler

	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimitMiddleware  *middleware.RateLimitMiddleware

	Enforcer *permission.Enforcer
}

func NewContainer(cfg *config.Config, database *gorm.DB, dispatcher events.EventDispatcher, log logger.Interface) (*Container, error) {
	// Repositories
	clientRepo := repository.NewClientRepository(database)
	apartmentRepo := repository.NewApartmentRepository(database)
	vendorRepo := repository.NewVendorRepository(database)
	productRepo := repository.NewProductRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	deliveryRepo := repository.NewDeliveryRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	userRepo := repository.NewUserRepository(database)
	issueRepo := repository.NewIssueRepository(database)
	messageRepo := repository.NewMessageRepository(database)

	txManager := db.NewTransactionManager(database)

	// Auth and authorization
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpMinutes, cfg.Auth.RefreshExpDays)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)

	enforcer, err := permission.NewEnforcer(database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPolicies(enforcer, log); err != nil {
		return nil, fmt.Errorf("failed to seed permission policies: %w", err)
	}

	// Rate limiting
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	limiter := ratelimit.NewRedisRateLimiter(redisClient)

	// Outbound email and AI drafting
	signer, err := token.NewSigner(cfg.Email.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create token signer: %w", err)
	}
	mailer := email.NewSMTPMailer(&cfg.Email)
	composer := email.NewComposer(mailer, messageRepo, signer, cfg.Email.FromName, log)

	drafter, err := ai.NewDrafter(&cfg.AI, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI drafter: %w", err)
	}

	// Application services
	notificationService := notificationapp.NewService(notificationRepo, userRepo, messageRepo, log)
	clientService := clientapp.NewService(clientRepo, log)
	apartmentService := apartmentapp.NewService(apartmentRepo, clientRepo, log)
	vendorService := vendorapp.NewService(vendorRepo, log)
	productService := productapp.NewService(productRepo, vendorRepo, log)
	orderService := orderapp.NewService(orderRepo, apartmentRepo, vendorRepo, productRepo, txManager, log)
	deliveryService := deliveryapp.NewService(deliveryRepo, orderRepo, notificationService, log)
	paymentService := paymentapp.NewService(paymentRepo, orderRepo, log)
	userService := userapp.NewService(userRepo, hasher, jwtService, log)

	// Issue lifecycle events feed the structured activity trail
	if err := usecases.RegisterActivityLog(dispatcher, log); err != nil {
		return nil, fmt.Errorf("failed to register activity log: %w", err)
	}

	// Issue use cases
	createIssueUC := usecases.NewCreateIssueUseCase(issueRepo, apartmentRepo, vendorRepo, productRepo, orderRepo, dispatcher, log)
	updateIssueUC := usecases.NewUpdateIssueUseCase(issueRepo, log)
	changePriorityUC := usecases.NewChangePriorityUseCase(issueRepo, log)
	closeIssueUC := usecases.NewCloseIssueUseCase(issueRepo, messageRepo, dispatcher, log)
	getIssueUC := usecases.NewGetIssueUseCase(issueRepo, log)
	listIssuesUC := usecases.NewListIssuesUseCase(issueRepo, log)
	getThreadUC := usecases.NewGetThreadUseCase(issueRepo, messageRepo, log)
	startUC := usecases.NewStartConversationUseCase(issueRepo, vendorRepo, apartmentRepo, drafter, composer, dispatcher, log)
	bulkStartUC := usecases.NewBulkStartConversationsUseCase(startUC, log)
	draftReplyUC := usecases.NewDraftReplyUseCase(issueRepo, messageRepo, vendorRepo, apartmentRepo, drafter, log)
	approveReplyUC := usecases.NewApproveReplyUseCase(issueRepo, messageRepo, vendorRepo, composer, dispatcher, log)
	rejectReplyUC := usecases.NewRejectReplyUseCase(issueRepo, messageRepo, log)
	sendManualUC := usecases.NewSendManualMessageUseCase(issueRepo, vendorRepo, composer, dispatcher, log)

	return &Container{
		AuthHandler:         handlers.NewAuthHandler(userService, log),
		ClientHandler:       handlers.NewClientHandler(clientService, log),
		ApartmentHandler:    handlers.NewApartmentHandler(apartmentService, log),
		VendorHandler:       handlers.NewVendorHandler(vendorService, log),
		ProductHandler:      handlers.NewProductHandler(productService, log),
		OrderHandler:        handlers.NewOrderHandler(orderService, log),
		DeliveryHandler:     handlers.NewDeliveryHandler(deliveryService, log),
		PaymentHandler:      handlers.NewPaymentHandler(paymentService, log),
		NotificationHandler: handlers.NewNotificationHandler(notificationService, log),
		UserHandler:         handlers.NewUserHandler(userService, log),
		IssueHandler: issuehandlers.NewHandler(
			createIssueUC, updateIssueUC, changePriorityUC, closeIssueUC,
			getIssueUC, listIssuesUC, getThreadUC,
			startUC, bulkStartUC, draftReplyUC,
			approveReplyUC, rejectReplyUC, sendManualUC,
			log,
		),

		AuthMiddleware:       middleware.NewAuthMiddleware(jwtService, log),
		PermissionMiddleware: middleware.NewPermissionMiddleware(enforcer, log),
		RateLimitMiddleware:  middleware.NewRateLimitMiddleware(limiter, log),

		Enforcer: enforcer,
	}, nil
}
