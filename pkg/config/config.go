package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Capture      CaptureConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ACRO_APP_ENV" default:"dev"`
	Port         string `envconfig:"ACRO_APP_PORT" default:"8470"`
	LogLevel     string `envconfig:"ACRO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ACRO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ACRO_DB_DSN"`
	Driver string `envconfig:"ACRO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"ACRO_DB_HOST"`
	Port     int    `envconfig:"ACRO_DB_PORT" default:"5432"`
	User     string `envconfig:"ACRO_DB_USER"`
	Password string `envconfig:"ACRO_DB_PASSWORD"`
	Name     string `envconfig:"ACRO_DB_NAME"`
	SSLMode  string `envconfig:"ACRO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ACRO_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"ACRO_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"ACRO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ACRO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN builds a DSN from the individual parts when one was not provided.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either ACRO_DB_DSN or ACRO_DB_HOST/ACRO_DB_USER/ACRO_DB_NAME must be set")
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()

	d.DSN = u.String()
	return nil
}

type CaptureConfig struct {
	// Hotkey is the combination the desktop shell registers, e.g. "ctrl+shift+d".
	Hotkey       string `envconfig:"ACRO_CAPTURE_HOTKEY" default:"ctrl+shift+d"`
	MaxKeyLength int    `envconfig:"ACRO_CAPTURE_MAX_KEY_LENGTH" default:"50"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ACRO_AUTO_MIGRATE" default:"false"`
}
