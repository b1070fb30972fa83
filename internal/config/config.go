package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN" validate:"required"`
	OwnerID       string `env:"OWNER_ID" validate:"required,numeric"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"+" validate:"required,max=16"`

	StatusInterval time.Duration `env:"STATUS_INTERVAL" envDefault:"10s" validate:"gt=0"`
	StatusHold     time.Duration `env:"STATUS_HOLD" envDefault:"5s" validate:"gte=0,ltfield=StatusInterval"`
	StatusTimezone string        `env:"STATUS_TIMEZONE" envDefault:"Asia/Bangkok" validate:"required"`

	HelpPageSize  int           `env:"HELP_PAGE_SIZE" envDefault:"5" validate:"min=1,max=25"`
	PagerCapacity int           `env:"PAGER_CAPACITY" envDefault:"1024" validate:"min=1"`
	PagerTTL      time.Duration `env:"PAGER_TTL" envDefault:"15m" validate:"gte=0"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console" validate:"oneof=console json"`
	LogFile   string `env:"LOG_FILE"`

	location *time.Location
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// New loads .env (if present) and the environment into a validated Config.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, falling back to system environment variables")
	}
	return Parse()
}

// Parse reads the environment into a validated Config without touching .env.
func Parse() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.StatusTimezone)
	if err != nil {
		return nil, fmt.Errorf("STATUS_TIMEZONE: %w", err)
	}
	cfg.location = loc
	return &cfg, nil
}

// Validate checks field constraints and reports the offending env names.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%s: failed %q", envName(fe.StructField()), fe.Tag()))
	}
	return errors.Join(errs...)
}

// Location returns StatusTimezone resolved to a *time.Location.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func envName(field string) string {
	if f, ok := envFields[field]; ok {
		return f
	}
	return field
}

var envFields = map[string]string{
	"DiscordToken":   "DISCORD_TOKEN",
	"OwnerID":        "OWNER_ID",
	"CommandPrefix":  "COMMAND_PREFIX",
	"StatusInterval": "STATUS_INTERVAL",
	"StatusHold":     "STATUS_HOLD",
	"StatusTimezone": "STATUS_TIMEZONE",
	"HelpPageSize":   "HELP_PAGE_SIZE",
	"PagerCapacity":  "PAGER_CAPACITY",
	"PagerTTL":       "PAGER_TTL",
	"LogLevel":       "LOG_LEVEL",
	"LogFormat":      "LOG_FORMAT",
}
