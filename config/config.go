package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderCalendly = "calendly"
	ProviderGoogle   = "google"

	maxDedupCapacity = 1000
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Event providers
	Provider       ProviderConfig
	Calendly       CalendlyConfig
	GoogleCalendar GoogleCalendarConfig

	// Notifications
	Twilio     TwilioConfig
	Recipients RecipientsConfig

	// Dinner scheduler specifics
	Missionary MissionaryConfig
	Scheduler  SchedulerConfig
	Security   SecurityConfig
	Ingestion  IngestionConfig
	Consent    ConsentConfig
	OptIn      OptInConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
	// TrustedProxies may set X-Forwarded-For. Empty trusts no proxy.
	TrustedProxies []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// ProviderConfig selects the event source: "calendly" or "google".
type ProviderConfig struct {
	Name string
}

type CalendlyConfig struct {
	AccessToken       string
	UserURI           string // resolved from /users/me when empty
	OrganizationURI   string // resolved from /users/me when empty
	WebhookSigningKey string
	BookingURL        string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Enabled reports whether real SMS delivery is configured.
func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// RecipientsConfig holds the directory as "phone:category:optedIn,..." triples.
type RecipientsConfig struct {
	PhoneNumbers string
}

type MissionaryConfig struct {
	AccessCode  string
	SessionTTL  time.Duration
	MaxSessions int
}

type SchedulerConfig struct {
	Enabled  bool
	Interval time.Duration
}

type SecurityConfig struct {
	CronSecret      string
	APISecretKey    string
	RateLimitPerMin int
}

type IngestionConfig struct {
	DedupCapacity     int
	Timezone          string
	AppointmentWindow time.Duration
}

type ConsentConfig struct {
	DBPath string
}

type OptInConfig struct {
	ValidTypes []string
}

type WebhookConfig struct {
	Enabled         bool
	PublicURL       string
	AutoRegister    bool
	NgrokAPIURL     string
	AllowedIPs      []string
	RateLimitPerMin int
	Tolerance       time.Duration
}

// Load loads configuration using Viper.
// .env.local and .env are read first when present.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	// Missing files are fine; real deployments use the environment.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.HTTPServer.TrustedProxies = splitList(v.GetString("http_server.trusted_proxies"), ",")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	if port := v.GetInt("port"); port != 0 {
		cfg.HTTPServer.Port = port
	}

	// Providers
	cfg.Provider.Name = strings.ToLower(strings.TrimSpace(v.GetString("provider.name")))

	cfg.Calendly.AccessToken = v.GetString("calendly.access_token")
	cfg.Calendly.UserURI = v.GetString("calendly.user_uri")
	cfg.Calendly.OrganizationURI = v.GetString("calendly.organization_uri")
	cfg.Calendly.WebhookSigningKey = v.GetString("calendly.webhook_signing_key")
	cfg.Calendly.BookingURL = v.GetString("calendly.booking_url")
	overrideString(v, &cfg.Calendly.AccessToken, "calendly_access_token")
	overrideString(v, &cfg.Calendly.WebhookSigningKey, "calendly_webhook_signing_key")
	overrideString(v, &cfg.Calendly.BookingURL, "next_public_calendly_url")

	cfg.GoogleCalendar.CredentialsPath = v.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = v.GetString("google_calendar.calendar_id")
	overrideString(v, &cfg.GoogleCalendar.CredentialsPath, "google_calendar_credentials")

	// Twilio
	cfg.Twilio.AccountSID = v.GetString("twilio.account_sid")
	cfg.Twilio.AuthToken = v.GetString("twilio.auth_token")
	cfg.Twilio.FromNumber = v.GetString("twilio.from_number")
	overrideString(v, &cfg.Twilio.AccountSID, "twilio_account_sid")
	overrideString(v, &cfg.Twilio.AuthToken, "twilio_auth_token")
	overrideString(v, &cfg.Twilio.FromNumber, "twilio_from_number")

	cfg.Recipients.PhoneNumbers = v.GetString("recipients.phone_numbers")
	overrideString(v, &cfg.Recipients.PhoneNumbers, "missionary_phone_numbers")

	// Missionary pages
	cfg.Missionary.AccessCode = v.GetString("missionary.access_code")
	cfg.Missionary.SessionTTL = v.GetDuration("missionary.session_ttl")
	cfg.Missionary.MaxSessions = v.GetInt("missionary.max_sessions")
	overrideString(v, &cfg.Missionary.AccessCode, "missionary_access_code")

	// Scheduler
	cfg.Scheduler.Enabled = v.GetBool("scheduler.enabled")
	cfg.Scheduler.Interval = v.GetDuration("scheduler.interval")

	// Security
	cfg.Security.CronSecret = v.GetString("security.cron_secret")
	cfg.Security.APISecretKey = v.GetString("security.api_secret_key")
	cfg.Security.RateLimitPerMin = v.GetInt("security.rate_limit_per_min")
	overrideString(v, &cfg.Security.CronSecret, "cron_secret")
	overrideString(v, &cfg.Security.APISecretKey, "api_secret_key")

	// Ingestion
	cfg.Ingestion.DedupCapacity = v.GetInt("ingestion.dedup_capacity")
	cfg.Ingestion.Timezone = v.GetString("ingestion.timezone")
	cfg.Ingestion.AppointmentWindow = v.GetDuration("ingestion.appointment_window")

	// Consent & opt-in
	cfg.Consent.DBPath = v.GetString("consent.db_path")
	cfg.OptIn.ValidTypes = splitList(v.GetString("opt_in.valid_types"), ",")
	if len(cfg.OptIn.ValidTypes) == 0 {
		cfg.OptIn.ValidTypes = v.GetStringSlice("opt_in.valid_types")
	}

	// Webhooks
	cfg.Webhook.Enabled = v.GetBool("webhook.enabled")
	cfg.Webhook.PublicURL = strings.TrimRight(v.GetString("webhook.public_url"), "/")
	cfg.Webhook.AutoRegister = v.GetBool("webhook.auto_register")
	cfg.Webhook.NgrokAPIURL = v.GetString("webhook.ngrok_api_url")
	cfg.Webhook.RateLimitPerMin = v.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.Tolerance = v.GetDuration("webhook.tolerance")

	// Split allowed IPs since viper might not parse array seamlessly from env
	cfg.Webhook.AllowedIPs = splitList(v.GetString("webhook.allowed_ips"), ",")

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("provider.name", ProviderCalendly)
	v.SetDefault("google_calendar.calendar_id", "primary")

	v.SetDefault("missionary.session_ttl", "24h")
	v.SetDefault("missionary.max_sessions", 1000)
	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.interval", "5m")
	v.SetDefault("security.rate_limit_per_min", 10)

	v.SetDefault("ingestion.dedup_capacity", 1000)
	v.SetDefault("ingestion.timezone", "America/Denver")
	v.SetDefault("ingestion.appointment_window", "720h")

	v.SetDefault("consent.db_path", "data/consent.db")

	v.SetDefault("webhook.enabled", true)
	v.SetDefault("webhook.auto_register", false)
	v.SetDefault("webhook.ngrok_api_url", "http://ngrok:4040")
	v.SetDefault("webhook.rate_limit_per_min", 60)
	v.SetDefault("webhook.tolerance", "5m")
}

// Validate reports missing values for the features that are switched on.
func (c *Config) Validate() error {
	var errs []error

	switch c.Provider.Name {
	case ProviderCalendly:
		if c.Calendly.AccessToken == "" {
			errs = append(errs, errors.New("calendly.access_token (CALENDLY_ACCESS_TOKEN) is required for the calendly provider"))
		}
	case ProviderGoogle:
		if c.GoogleCalendar.CredentialsPath == "" {
			errs = append(errs, errors.New("google_calendar.credentials_path is required for the google provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("provider.name %q is not supported", c.Provider.Name))
	}

	if c.HTTPServer.Port <= 0 {
		errs = append(errs, errors.New("http_server.port must be positive"))
	}
	if c.Scheduler.Enabled && c.Scheduler.Interval <= 0 {
		errs = append(errs, errors.New("scheduler.interval must be positive when the scheduler is enabled"))
	}
	if c.Ingestion.DedupCapacity <= 0 || c.Ingestion.DedupCapacity > maxDedupCapacity {
		errs = append(errs, fmt.Errorf("ingestion.dedup_capacity must be between 1 and %d", maxDedupCapacity))
	}
	if c.Missionary.SessionTTL <= 0 {
		errs = append(errs, errors.New("missionary.session_ttl must be positive"))
	}
	if c.Webhook.AutoRegister && c.Provider.Name == ProviderCalendly && c.Calendly.WebhookSigningKey == "" {
		errs = append(errs, errors.New("calendly.webhook_signing_key is required when webhook.auto_register is set"))
	}

	return errors.Join(errs...)
}

// overrideString replaces dst with the value of an upper-case env alias when set.
func overrideString(v *viper.Viper, dst *string, key string) {
	if val := v.GetString(key); val != "" {
		*dst = val
	}
}

func splitList(raw, sep string) []string {
	var out []string
	for _, item := range strings.Split(raw, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
