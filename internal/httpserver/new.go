package httpserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"dinner-scheduler/internal/appointment"
	"dinner-scheduler/internal/ingestion"
	"dinner-scheduler/internal/middleware"
	"dinner-scheduler/internal/optin"
	"dinner-scheduler/internal/webhook"
	"dinner-scheduler/pkg/localtime"
	"dinner-scheduler/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration
	mw              middleware.Middleware
	formatter       *localtime.Formatter

	// Ingestion triggers
	ingestionUC    ingestion.UseCase
	cronLookback   time.Duration
	webhookHandler *webhook.Handler

	// Missionary pages
	appointmentUC appointment.UseCase

	// SMS opt-in
	optinUC     optin.UseCase
	twilioToken string
	publicURL   string
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration
	Middleware      middleware.Middleware
	Formatter       *localtime.Formatter
	// TrustedProxies lists the peers allowed to set X-Forwarded-For. Empty
	// means the socket address is always the client IP.
	TrustedProxies []string

	// Ingestion triggers. CronLookback should equal the scheduler interval.
	IngestionUC    ingestion.UseCase
	CronLookback   time.Duration
	WebhookHandler *webhook.Handler

	// Missionary pages (optional)
	AppointmentUC appointment.UseCase

	// SMS opt-in (optional). TwilioAuthToken enables inbound signature checks.
	OptInUC         optin.UseCase
	TwilioAuthToken string
	PublicURL       string
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		mw:              cfg.Middleware,
		formatter:       cfg.Formatter,
		ingestionUC:     cfg.IngestionUC,
		cronLookback:    cfg.CronLookback,
		webhookHandler:  cfg.WebhookHandler,
		appointmentUC:   cfg.AppointmentUC,
		optinUC:         cfg.OptInUC,
		twilioToken:     cfg.TwilioAuthToken,
		publicURL:       cfg.PublicURL,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = 10 * time.Second
	}
	if srv.formatter == nil {
		srv.formatter = localtime.MustFormatter("")
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.ingestionUC == nil {
		return errors.New("ingestion use case is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
