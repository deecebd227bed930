package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the API, the worker and the CLI read from the environment.
type Config struct {
	AppEnv        string
	Port          string
	JWTSecret     string
	DatabaseURL   string
	CORSOrigins   []string
	DefaultLocale string

	Storage  StorageConfig
	SMTP     SMTPConfig
	RabbitMQ RabbitMQConfig

	DraftTTL      time.Duration
	DraftCapacity int
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// Enabled reports whether media uploads can be stored.
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != "" && s.Bucket != ""
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != "" && s.NotifyTo != ""
}

type RabbitMQConfig struct {
	URL string
}

func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

// Load reads .env outside production and then the process environment.
func Load() (*Config, error) {
	return load("JWT_SECRET", "DATABASE_URL")
}

// LoadWorker is Load for the notification worker, which needs the broker
// and SMTP but no database.
func LoadWorker() (*Config, error) {
	return load("RABBITMQ_URL", "SMTP_HOST", "SMTP_FROM", "NOTIFY_EMAIL_TO")
}

// LoadCLI is Load for cateringctl, which only talks to the database.
func LoadCLI() (*Config, error) {
	return load("DATABASE_URL")
}

func load(required ...string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	var missing []string
	for _, k := range required {
		if os.Getenv(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing env vars: %s", strings.Join(missing, ", "))
	}

	smtpPort, err := intEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	draftCap, err := intEnv("DRAFT_CAPACITY", 10000)
	if err != nil {
		return nil, err
	}
	draftTTL, err := durationEnv("DRAFT_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		AppEnv:        stringEnv("APP_ENV", "development"),
		Port:          stringEnv("PORT", "8000"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		CORSOrigins:   listEnv("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		DefaultLocale: stringEnv("DEFAULT_LOCALE", "sr"),
		Storage: StorageConfig{
			Endpoint:      os.Getenv("R2_ENDPOINT"),
			AccessKey:     os.Getenv("R2_ACCESS_KEY"),
			SecretKey:     os.Getenv("R2_SECRET_KEY"),
			Bucket:        os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL: strings.TrimRight(os.Getenv("R2_PUBLIC_BASE_URL"), "/"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			NotifyTo: os.Getenv("NOTIFY_EMAIL_TO"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: os.Getenv("RABBITMQ_URL"),
		},
		DraftTTL:      draftTTL,
		DraftCapacity: draftCap,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func listEnv(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
