// Package factory builds the configured EventSource.
package factory

import (
	"context"
	"fmt"

	"dinner-scheduler/internal/provider"
	calendlySource "dinner-scheduler/internal/provider/calendly"
	gcalSource "dinner-scheduler/internal/provider/gcal"
	pkgCalendly "dinner-scheduler/pkg/calendly"
	"dinner-scheduler/pkg/gcalendar"
	pkgLog "dinner-scheduler/pkg/log"
)

// Config selects and configures one provider.
type Config struct {
	Name string

	CalendlyAccessToken string
	CalendlyUserURI     string
	CalendlyAPIURL      string // tests only

	GoogleCredentialsPath string
	GoogleCalendarID      string
}

// Result is the built source. Calendly is set only for the calendly provider,
// which also serves invitee lookups and webhook registration.
type Result struct {
	Source   provider.EventSource
	Calendly *pkgCalendly.Client
}

// New builds the EventSource named by cfg.Name.
func New(ctx context.Context, l pkgLog.Logger, cfg Config) (Result, error) {
	switch cfg.Name {
	case provider.NameCalendly, "":
		if cfg.CalendlyAccessToken == "" {
			return Result{}, fmt.Errorf("factory.New: calendly access token is missing")
		}
		client := pkgCalendly.NewClient(cfg.CalendlyAccessToken)
		if cfg.CalendlyAPIURL != "" {
			client.SetAPIURL(cfg.CalendlyAPIURL)
		}
		return Result{
			Source:   calendlySource.New(l, client, cfg.CalendlyUserURI),
			Calendly: client,
		}, nil

	case provider.NameGoogle:
		client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			return Result{}, fmt.Errorf("factory.New: %w", err)
		}
		return Result{Source: gcalSource.New(client, cfg.GoogleCalendarID)}, nil

	default:
		return Result{}, fmt.Errorf("factory.New: unknown provider %q", cfg.Name)
	}
}
