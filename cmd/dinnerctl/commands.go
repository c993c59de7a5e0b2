package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"dinner-scheduler/config"
	"dinner-scheduler/internal/dedup"
	"dinner-scheduler/internal/ingestion"
	ingestionUsecase "dinner-scheduler/internal/ingestion/usecase"
	"dinner-scheduler/internal/notification"
	"dinner-scheduler/internal/notification/sender"
	notificationUsecase "dinner-scheduler/internal/notification/usecase"
	"dinner-scheduler/internal/provider/factory"
	"dinner-scheduler/internal/recipient"
	"dinner-scheduler/internal/webhook"
	pkgCalendly "dinner-scheduler/pkg/calendly"
	"dinner-scheduler/pkg/localtime"
	"dinner-scheduler/pkg/log"
	"dinner-scheduler/pkg/twilio"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Print the Calendly user behind the configured access token.",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Calendly.AccessToken == "" {
				return errors.New("CALENDLY_ACCESS_TOKEN is not set")
			}

			me, err := pkgCalendly.NewClient(cfg.Calendly.AccessToken).CurrentUser(c.Context)
			if err != nil {
				return err
			}
			return printUser(c.App.Writer, me)
		},
	}
}

func printUser(w io.Writer, me *pkgCalendly.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", me.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", me.Email)
	fmt.Fprintf(tw, "URI:\t%s\n", me.URI)
	fmt.Fprintf(tw, "Organization:\t%s\n", me.CurrentOrganization)
	fmt.Fprintf(tw, "Timezone:\t%s\n", me.Timezone)
	return tw.Flush()
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Run one ingestion cycle against the configured provider.",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "since", Value: 5 * time.Minute, Usage: "How far back to look for new events."},
			&cli.BoolFlag{Name: "dry-run", Usage: "Log messages instead of sending them."},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := log.Init(log.ZapConfig{
				Level:    cfg.Logger.Level,
				Mode:     cfg.Logger.Mode,
				Encoding: cfg.Logger.Encoding,
			})

			res, err := factory.New(c.Context, logger, factory.Config{
				Name:                  cfg.Provider.Name,
				CalendlyAccessToken:   cfg.Calendly.AccessToken,
				CalendlyUserURI:       cfg.Calendly.UserURI,
				GoogleCredentialsPath: cfg.GoogleCalendar.CredentialsPath,
				GoogleCalendarID:      cfg.GoogleCalendar.CalendarID,
			})
			if err != nil {
				return err
			}

			var smsSender notification.Sender
			if c.Bool("dry-run") || !cfg.Twilio.Enabled() {
				smsSender = sender.NewDryRun(logger)
			} else {
				smsSender = sender.NewTwilio(twilio.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber))
			}

			formatter, err := localtime.NewFormatter(cfg.Ingestion.Timezone)
			if err != nil {
				return err
			}

			uc := ingestionUsecase.New(
				logger,
				res.Source,
				dedup.New(cfg.Ingestion.DedupCapacity),
				notificationUsecase.New(logger, smsSender, recipient.NewDirectory(cfg.Recipients.PhoneNumbers)),
				formatter,
			)

			out, runErr := uc.ProcessSince(c.Context, ingestion.ProcessSinceInput{
				Since: time.Now().Add(-c.Duration("since")),
			})
			if err := writeJSON(c.App.Writer, out); err != nil {
				return err
			}
			return runErr
		},
	}
}

func signCommand() *cli.Command {
	return &cli.Command{
		Name:  "sign",
		Usage: "Print the Calendly-Webhook-Signature header for a payload.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Payload file; stdin when omitted."},
			&cli.StringFlag{Name: "key", Usage: "Signing key; defaults to CALENDLY_WEBHOOK_SIGNING_KEY."},
			&cli.BoolFlag{Name: "timestamped", Usage: "Emit the t=...,v1=... form instead of bare hex."},
		},
		Action: func(c *cli.Context) error {
			key := c.String("key")
			if key == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				key = cfg.Calendly.WebhookSigningKey
			}
			if key == "" {
				return errors.New("no signing key: pass --key or set CALENDLY_WEBHOOK_SIGNING_KEY")
			}

			payload, err := readPayload(c)
			if err != nil {
				return err
			}

			sig := webhook.SignCalendlyPayload(key, payload)
			if c.Bool("timestamped") {
				sig = webhook.SignCalendlyPayloadAt(key, payload, time.Now())
			}
			_, err = fmt.Fprintln(c.App.Writer, sig)
			return err
		},
	}
}

func readPayload(c *cli.Context) ([]byte, error) {
	if path := c.String("file"); path != "" {
		return os.ReadFile(path)
	}
	reader := c.App.Reader
	if reader == nil {
		reader = os.Stdin
	}
	return io.ReadAll(reader)
}

func recipientsCommand() *cli.Command {
	return &cli.Command{
		Name:  "recipients",
		Usage: "Print the parsed recipient directory.",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dir := recipient.NewDirectory(cfg.Recipients.PhoneNumbers)
			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PHONE\tTYPE\tOPTED IN")
			for _, r := range dir.Recipients() {
				fmt.Fprintf(tw, "%s\t%s\t%t\n", r.Phone, r.Category, r.OptedIn)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.App.Writer, "%d of %d opted in\n", len(dir.OptedIn()), len(dir.Recipients()))
			return err
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
