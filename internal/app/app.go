package app

import (
	"fmt"
	"log"

	"formiverse/internal/config"
	"formiverse/internal/db"
	"formiverse/internal/handlers"
	"formiverse/internal/middleware"
	"formiverse/internal/pdf"
	"formiverse/internal/repositories"
	"formiverse/internal/routes"
	"formiverse/internal/services"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "formiverse/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal("database connection failed: ", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("database close failed: %v", err)
		}
	}()
	if err := db.EnsureSchema(conn); err != nil {
		log.Fatal("schema migration failed: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(conn)
	pendingRepo := repositories.NewPendingUserRepository(conn)
	resetRepo := repositories.NewPasswordResetRepository(conn)
	formRepo := repositories.NewFormRepository(conn)
	questionRepo := repositories.NewQuestionRepository(conn)
	responseRepo := repositories.NewResponseRepository(conn)
	tgLinkRepo := repositories.NewTelegramLinkRepository(conn)

	// === Services ===
	authService := services.NewAuthService(
		userRepo,
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		config.ExpiryOrDefault(cfg.JWT.AccessExpiry, services.DefaultAccessTTL),
		config.ExpiryOrDefault(cfg.JWT.LoginAccessExpiry, services.DefaultLoginAccessTTL),
		config.ExpiryOrDefault(cfg.JWT.RefreshExpiry, services.DefaultRefreshTTL),
	)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	registrationService := services.NewRegistrationService(pendingRepo, userRepo, authService, emailService)
	resetService := services.NewPasswordResetService(userRepo, resetRepo, authService, emailService)
	formService := services.NewFormService(formRepo, questionRepo)

	tgService, err := services.NewTelegramService(cfg.Telegram.BotToken)
	if err != nil {
		log.Fatal("telegram bot init failed: ", err)
	}

	sheetGen := pdf.NewSheetGenerator(cfg.Files.RootDir)
	responseService := services.NewResponseService(
		responseRepo,
		formRepo,
		questionRepo,
		userRepo,
		tgService,
		sheetGen,
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(registrationService, authService, resetService, userRepo, cfg.IsProduction())
	formHandler := handlers.NewFormHandler(formService)
	responseHandler := handlers.NewResponseHandler(responseService)
	mailHandler := handlers.NewMailHandler(emailService)

	var integrationsHandler *handlers.IntegrationsHandler
	if tgService != nil {
		integrationsHandler = handlers.NewIntegrationsHandler(tgService, tgLinkRepo, userRepo)
		if cfg.Telegram.WebhookURL != "" {
			if err := tgService.SetWebhook(cfg.Telegram.WebhookURL); err != nil {
				log.Printf("telegram webhook registration failed: %v", err)
			}
		}
	}

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORS.Origin))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authService,
		userRepo,
		authHandler,
		formHandler,
		responseHandler,
		mailHandler,
		integrationsHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s (env=%s)", listenAddr, cfg.Env)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server start failed: ", err)
	}
}
