package config

import (
	"os"
	"time"

	"github.com/Skotchmaster/printshop/internal/es"
	"github.com/Skotchmaster/printshop/internal/mailer"
	"github.com/Skotchmaster/printshop/pkg/config"
)

type ServiceConfig struct {
	config.Config

	ES        es.Config
	SearchIdx string

	SMTP        mailer.Config
	MailWorkers int
	AdminEmail  string

	UploadDir string
	PublicURL string

	NodeID int64

	CheckoutTTL  time.Duration
	GuestCartTTL time.Duration
	Timezone     string
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return ServiceConfig{
		Config: cfg,

		ES: es.Config{
			URL:      os.Getenv("ES_URL"),
			User:     os.Getenv("ES_USER"),
			Password: os.Getenv("ES_PASSWORD"),
		},
		SearchIdx: config.EnvDefault("ES_INDEX", "products"),

		SMTP: mailer.Config{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     config.EnvIntDefault("SMTP_PORT", 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     config.EnvDefault("SMTP_FROM", "no-reply@printshop.local"),
		},
		MailWorkers: config.EnvIntDefault("MAIL_WORKERS", 4),
		AdminEmail:  os.Getenv("ADMIN_EMAIL"),

		UploadDir: config.EnvDefault("UPLOAD_DIR", "uploads"),
		PublicURL: config.EnvDefault("PUBLIC_URL", "http://localhost:9000"),

		NodeID: int64(config.EnvIntDefault("NODE_ID", 1)),

		CheckoutTTL:  config.EnvDurationDefault("CHECKOUT_TTL", 72*time.Hour),
		GuestCartTTL: config.EnvDurationDefault("GUEST_CART_TTL", 30*24*time.Hour),
		Timezone:     config.EnvDefault("TIMEZONE", "UTC"),
	}
}
