package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"dinner-scheduler/config"
	_ "dinner-scheduler/docs" // Swagger docs
	appointmentUsecase "dinner-scheduler/internal/appointment/usecase"
	"dinner-scheduler/internal/consent"
	consentSQLite "dinner-scheduler/internal/consent/repository/sqlite"
	"dinner-scheduler/internal/dedup"
	"dinner-scheduler/internal/httpserver"
	"dinner-scheduler/internal/ingestion/delivery/job"
	ingestionUsecase "dinner-scheduler/internal/ingestion/usecase"
	"dinner-scheduler/internal/middleware"
	"dinner-scheduler/internal/notification"
	"dinner-scheduler/internal/notification/sender"
	notificationUsecase "dinner-scheduler/internal/notification/usecase"
	"dinner-scheduler/internal/optin"
	optinUsecase "dinner-scheduler/internal/optin/usecase"
	"dinner-scheduler/internal/provider/factory"
	"dinner-scheduler/internal/recipient"
	"dinner-scheduler/internal/session"
	"dinner-scheduler/internal/webhook"
	"dinner-scheduler/pkg/localtime"
	"dinner-scheduler/pkg/log"
	"dinner-scheduler/pkg/twilio"
)

// @title       Dinner Scheduler API
// @description Notifies missionaries by SMS when members book dinner appointments.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Dinner Scheduler...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Provider: %s", cfg.Provider.Name)

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration: ", err)
		return
	}

	// 3. Time formatting
	formatter, err := localtime.NewFormatter(cfg.Ingestion.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Ingestion.Timezone, err)
		formatter = localtime.MustFormatter("UTC")
	}

	// 4. Event provider
	providerRes, err := factory.New(ctx, logger, factory.Config{
		Name:                  cfg.Provider.Name,
		CalendlyAccessToken:   cfg.Calendly.AccessToken,
		CalendlyUserURI:       cfg.Calendly.UserURI,
		GoogleCredentialsPath: cfg.GoogleCalendar.CredentialsPath,
		GoogleCalendarID:      cfg.GoogleCalendar.CalendarID,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize event provider: ", err)
		return
	}

	// 5. SMS transport
	var smsSender notification.Sender
	if cfg.Twilio.Enabled() {
		smsSender = sender.NewTwilio(twilio.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber))
		logger.Info(ctx, "✅ Twilio initialized")
	} else {
		smsSender = sender.NewDryRun(logger)
		logger.Warn(ctx, "Twilio skipped: TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, or TWILIO_FROM_NUMBER is missing; messages are only logged")
	}

	// 6. Recipients & notifications
	directory := recipient.NewDirectory(cfg.Recipients.PhoneNumbers)
	logger.Infof(ctx, "Recipient directory: %d entries, %d opted in", len(directory.Recipients()), len(directory.OptedIn()))
	notificationUC := notificationUsecase.New(logger, smsSender, directory)

	// 7. Ingestion
	ingestionUC := ingestionUsecase.New(logger, providerRes.Source, dedup.New(cfg.Ingestion.DedupCapacity), notificationUC, formatter)

	// 8. Sessions & middleware
	sessions := session.NewStore(cfg.Missionary.SessionTTL, cfg.Missionary.MaxSessions)
	mw := middleware.New(logger, middleware.Config{
		CronSecret:      cfg.Security.CronSecret,
		APISecretKey:    cfg.Security.APISecretKey,
		Sessions:        sessions,
		RateLimitPerMin: cfg.Security.RateLimitPerMin,
	})

	// 9. Missionary pages
	appointmentUC, err := appointmentUsecase.New(logger, providerRes.Source, sessions, cfg.Missionary.AccessCode,
		appointmentUsecase.WithWindow(cfg.Ingestion.AppointmentWindow))
	if err != nil {
		logger.Error(ctx, "Failed to initialize missionary pages: ", err)
		return
	}
	if cfg.Missionary.AccessCode == "" {
		logger.Warn(ctx, "MISSIONARY_ACCESS_CODE is missing; missionary login is disabled")
	}

	// 10. Consent log & SMS opt-in (optional)
	var consentRepo consent.Repository
	if cfg.Consent.DBPath != "" {
		if mkErr := os.MkdirAll(filepath.Dir(cfg.Consent.DBPath), 0o755); mkErr != nil {
			logger.Warnf(ctx, "Consent log not available (optional): %v", mkErr)
		} else if consentRepo, err = consentSQLite.New(cfg.Consent.DBPath); err != nil {
			logger.Warnf(ctx, "Consent log not available (optional): %v", err)
			consentRepo = nil
		} else {
			defer consentRepo.Close()
			logger.Infof(ctx, "✅ Consent log at %s", cfg.Consent.DBPath)
		}
	}

	var optinUC optin.UseCase
	optinUC, err = optinUsecase.New(logger, directory, consentRepo, smsSender, cfg.OptIn.ValidTypes)
	if err != nil {
		logger.Warnf(ctx, "SMS opt-in skipped: %v", err)
		optinUC = nil
	}

	// 11. Calendly callbacks (optional)
	var webhookHandler *webhook.Handler
	if cfg.Webhook.Enabled {
		var invitees webhook.InviteeFetcher
		if providerRes.Calendly != nil {
			invitees = providerRes.Calendly
		}
		webhookHandler = webhook.NewHandler(ingestionUC, webhook.SecurityConfig{
			SigningKey:      cfg.Calendly.WebhookSigningKey,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			TrustedProxies:  cfg.HTTPServer.TrustedProxies,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
			Tolerance:       cfg.Webhook.Tolerance,
		}, invitees, logger)
		if cfg.Calendly.WebhookSigningKey == "" {
			logger.Warn(ctx, "CALENDLY_WEBHOOK_SIGNING_KEY is missing; Calendly callbacks will be rejected")
		}
	}

	// 12. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		TrustedProxies:  cfg.HTTPServer.TrustedProxies,
		Middleware:      mw,
		Formatter:       formatter,
		IngestionUC:     ingestionUC,
		CronLookback:    cfg.Scheduler.Interval,
		WebhookHandler:  webhookHandler,
		AppointmentUC:   appointmentUC,
		OptInUC:         optinUC,
		TwilioAuthToken: cfg.Twilio.AuthToken,
		PublicURL:       cfg.Webhook.PublicURL,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 13. Webhook registration: configured public URL or auto-detected ngrok tunnel
	if webhookHandler != nil && cfg.Webhook.AutoRegister && providerRes.Calendly != nil {
		go func() {
			baseURL := publicURL(ctx, logger, cfg.Webhook)
			if baseURL == "" {
				logger.Warn(ctx, "Calendly webhook not registered: no public URL")
				return
			}
			sub, regErr := registerCalendlyWebhook(ctx, providerRes.Calendly, cfg.Calendly, baseURL)
			if regErr != nil {
				logger.Warnf(ctx, "Failed to register Calendly webhook: %v", regErr)
				return
			}
			logger.Infof(ctx, "✅ Calendly webhook registered at %s", sub.CallbackURL)
		}()
	}

	// 14. Poller (optional)
	pollerDone := make(chan struct{})
	if cfg.Scheduler.Enabled {
		poller := job.NewPoller(logger, ingestionUC, cfg.Scheduler.Interval)
		go func() {
			defer close(pollerDone)
			poller.Run(ctx)
		}()
		logger.Infof(ctx, "✅ Poller running every %s", cfg.Scheduler.Interval)
	} else {
		close(pollerDone)
	}

	// 15. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
	<-pollerDone

	logger.Info(ctx, "Server stopped gracefully")
}
