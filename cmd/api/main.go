package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/tigersos/tigersos-api/internal/cache"
	"github.com/tigersos/tigersos-api/internal/handlers"
	"github.com/tigersos/tigersos-api/internal/mailer"
	"github.com/tigersos/tigersos-api/internal/recovery"
	"github.com/tigersos/tigersos-api/internal/repository"
	"github.com/tigersos/tigersos-api/internal/service"
	"github.com/tigersos/tigersos-api/pkg/config"
	"github.com/tigersos/tigersos-api/pkg/database"
	"github.com/tigersos/tigersos-api/pkg/events"
	"github.com/tigersos/tigersos-api/pkg/logger"
	custommw "github.com/tigersos/tigersos-api/pkg/middleware"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	var redisClient *cache.Client
	if cfg.Redis.URL != "" {
		redisClient, err = cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	userRepo := repository.NewUserRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	alertRepo := repository.NewAlertRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	registry := recovery.NewRegistry(cfg.Auth.RecoveryCodeTTL)
	mailerSvc := buildMailer(cfg)

	authService := service.NewAuthService(userRepo, registry, mailerSvc, eventBus, cfg)
	userService := service.NewUserService(userRepo, contactRepo)
	alertService := service.NewAlertService(alertRepo, userRepo, eventBus)
	adminService := service.NewAdminService(userRepo, contactRepo, alertRepo, settingsRepo, eventBus)

	h := handlers.New(authService, userService, alertService, adminService, cfg)

	r := chi.NewRouter()
	r.Use(custommw.RequestID)
	r.Use(custommw.ServiceName("tigersos-api"))
	r.Use(custommw.Logging)
	r.Use(custommw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if redisClient != nil {
		r.Use(custommw.IdempotencyMiddleware(redisClient))
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/reset-password", h.ResetPassword)
	r.Post("/reset-password-confirm", h.ResetPasswordConfirm)

	r.Group(func(r chi.Router) {
		r.Use(h.Authenticated)

		r.Post("/add-emergency-contact", h.AddEmergencyContact)
		r.Get("/user/{id}", h.GetUser)
		r.Put("/user/{id}", h.UpdateUser)
		r.Put("/update-emergency-contact/{userID}", h.UpdateEmergencyContact)
		r.Post("/emergency-alert", h.CreateAlert)
		r.Get("/user-alerts/{userID}", h.ListUserAlerts)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.AuthenticatedAdmin)

		r.Get("/dashboard", h.Dashboard)
		r.Get("/users", h.ListUsers)
		r.Get("/users/{id}", h.AdminGetUser)
		r.Get("/alerts", h.ListAlerts)
		r.Put("/alerts/{alertID}", h.UpdateAlert)
		r.Put("/make-admin/{id}", h.MakeAdmin)
		r.Post("/create-admin", h.CreateAdmin)
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exited")
}

// buildMailer picks the delivery channel: log-only in dev, MailerSend when
// an API key is configured, plain SMTP otherwise.
func buildMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode {
		return mailer.NewDevMailer()
	}
	if cfg.Email.MailerSendKey != "" {
		ms, err := mailer.NewMailerSendMailer(cfg.Email.MailerSendKey, "TigerSOS", cfg.Email.SMTPFrom)
		if err == nil {
			return ms
		}
		logger.Warn("MailerSend unavailable, falling back to SMTP", "error", err)
	}
	return mailer.NewSMTPMailer(
		cfg.Email.SMTPHost, cfg.Email.SMTPPort,
		cfg.Email.SMTPFrom, cfg.Email.SMTPUser, cfg.Email.SMTPPass,
		cfg.Email.SMTPUseTLS,
	)
}
