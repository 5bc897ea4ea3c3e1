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
	"github.com/planejacasar/wedding-backend/internal/http/handlers"
	httpmw "github.com/planejacasar/wedding-backend/internal/http/middleware"
	"github.com/planejacasar/wedding-backend/internal/platform/mailer"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
	"github.com/planejacasar/wedding-backend/internal/service"
	"github.com/planejacasar/wedding-backend/pkg/config"
	"github.com/planejacasar/wedding-backend/pkg/database"
	"github.com/planejacasar/wedding-backend/pkg/events"
	"github.com/planejacasar/wedding-backend/pkg/logger"
	mw "github.com/planejacasar/wedding-backend/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	resetRepo := postgres.NewPasswordResetRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	guestRepo := postgres.NewGuestRepository(pool)
	checklistRepo := postgres.NewChecklistRepository(pool)
	timelineRepo := postgres.NewTimelineRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	ideaRepo := postgres.NewIdeaRepository(pool)

	// Pick the mailer
	var mail mailer.Service
	if cfg.Email.DevMode || cfg.Email.MailerSendKey == "" {
		mail = mailer.NewDevMailer()
	} else {
		mail = mailer.NewMailerSendMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, resetRepo, mail, eventBus, cfg)
	eventService := service.NewEventService(eventRepo, userRepo, eventBus)
	dashboardService := service.NewDashboardService(eventRepo, guestRepo, checklistRepo, budgetRepo, vendorRepo)
	guestService := service.NewGuestService(guestRepo, eventRepo)
	checklistService := service.NewChecklistService(checklistRepo, eventRepo, eventBus)
	timelineService := service.NewTimelineService(timelineRepo, eventRepo)
	budgetService := service.NewBudgetService(budgetRepo, eventRepo)
	vendorService := service.NewVendorService(vendorRepo, eventRepo)
	ideaService := service.NewIdeaService(ideaRepo, eventRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	eventHandler := handlers.NewEventHandler(eventService)
	dashboardHandler := handlers.NewDashboardHandler(eventService, dashboardService)
	guestHandler := handlers.NewGuestHandler(guestService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	timelineHandler := handlers.NewTimelineHandler(timelineService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	ideaHandler := handlers.NewIdeaHandler(ideaService)

	authLimiter := httpmw.NewRateLimiter(pool, httpmw.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Email.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	requireAuth := httpmw.RequireAuth(cfg.Auth.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		r.Mount("/auth", authHandler.Routes(authLimiter.Middleware(), requireAuth))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Mount("/events", eventHandler.Routes())
			r.Mount("/dashboard", dashboardHandler.Routes())
			r.Mount("/guests", guestHandler.Routes())
			r.Mount("/checklist", checklistHandler.Routes())
			r.Mount("/timeline", timelineHandler.Routes())
			r.Mount("/budgets", budgetHandler.Routes())
			r.Mount("/vendors", vendorHandler.Routes())
			r.Mount("/ideas", ideaHandler.Routes())
		})
	})

	// Periodic sweep of expired rate-limit counters and reset tokens
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := authLimiter.CleanupExpired(ctx); err != nil {
				logger.Error("rate limit cleanup failed", "error", err)
			}
			if _, err := resetRepo.DeleteExpired(ctx); err != nil {
				logger.Error("reset token cleanup failed", "error", err)
			}
		}
	}()

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("API shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}
