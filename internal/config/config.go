package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBDSN         string `envconfig:"DB_DSN" required:"true"`
	ServerPort    string `envconfig:"SERVER_PORT" default:"8080"`
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
	SecureCookies bool   `envconfig:"SECURE_COOKIES" default:"false"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer string        `envconfig:"JWT_ISSUER" default:"residence-hub"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// часовой пояс для склейки даты и HH:MM из форм
	TZName string `envconfig:"TZ_NAME" default:"Local"`

	RabbitURL      string `envconfig:"RABBIT_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"community.exchange"`
	OTELEndpoint   string `envconfig:"OTEL_ENDPOINT"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@example.com"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"password123"`

	LoginRPS   float64 `envconfig:"LOGIN_RPS" default:"1"`
	LoginBurst int     `envconfig:"LOGIN_BURST" default:"5"`
}

func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Parse reads the process environment without touching .env files.
func Parse() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	// required пропускает заданную, но пустую переменную
	if cfg.DBDSN == "" || cfg.SessionSecret == "" || cfg.JWTSecret == "" {
		return nil, fmt.Errorf("DB_DSN, SESSION_SECRET and JWT_SECRET must not be empty")
	}
	if _, err := location(cfg.TZName); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Location() *time.Location {
	loc, err := location(c.TZName)
	if err != nil {
		return time.Local
	}
	return loc
}

// Notifier: настройки воркера уведомлений (cmd/notifier)
type Notifier struct {
	RabbitURL      string `envconfig:"RABBIT_URL" required:"true"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"community.exchange"`
	NotifyQueue    string `envconfig:"NOTIFY_QUEUE" default:"community.notifications"`
	TZName         string `envconfig:"TZ_NAME" default:"Local"`
}

func LoadNotifier() *Notifier {
	_ = godotenv.Load()

	cfg, err := ParseNotifier()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func ParseNotifier() (*Notifier, error) {
	var cfg Notifier
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.RabbitURL == "" {
		return nil, fmt.Errorf("RABBIT_URL must not be empty")
	}
	if _, err := location(cfg.TZName); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Notifier) Location() *time.Location {
	loc, err := location(c.TZName)
	if err != nil {
		return time.Local
	}
	return loc
}

func location(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("TZ_NAME %q: %w", name, err)
	}
	return loc, nil
}
