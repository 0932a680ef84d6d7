package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	TLS       TLSConfig
	Firebase  FirebaseConfig
	Telemetry TelemetryConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT"             env-default:"8080"`
	Host            string        `env:"HOST"             env-default:"0.0.0.0"`
	AllowedHostsRaw string        `env:"ALLOWED_HOSTS"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT"    env-default:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"30s"`

	// AllowedHosts is parsed from AllowedHostsRaw during Load.
	AllowedHosts []string `env:"-"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST"     env-default:"localhost"`
	Port            int           `env:"DB_PORT"     env-default:"5432"`
	User            string        `env:"DB_USER"     env-default:"postgres"`
	Password        string        `env:"DB_PASSWORD"`
	DBName          string        `env:"DB_NAME"     env-default:"orcamentos"`
	SSLMode         string        `env:"DB_SSLMODE"  env-default:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"     env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"     env-default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME"  env-default:"5m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE"       env-default:"true"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `env:"JWT_TTL"    env-default:"24h"`
}

type TLSConfig struct {
	Enabled      bool   `env:"TLS_ENABLED"       env-default:"false"`
	CertPath     string `env:"TLS_CERT_PATH"`
	KeyPath      string `env:"TLS_KEY_PATH"`
	RedirectHTTP bool   `env:"TLS_REDIRECT_HTTP" env-default:"false"`
}

type FirebaseConfig struct {
	CredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
	ProjectID       string `env:"FIREBASE_PROJECT_ID"`
}

type TelemetryConfig struct {
	Enabled      bool   `env:"OTEL_ENABLED"           env-default:"false"`
	ServiceName  string `env:"OTEL_SERVICE_NAME"      env-default:"orcamentos-api"`
	Environment  string `env:"OTEL_ENVIRONMENT"       env-default:"development"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_ENDPOINT" env-default:"localhost:4317"`
	MetricsPort  string `env:"METRICS_PORT"           env-default:"9090"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// Load reads the configuration from the environment. Callers that want a
// local .env file applied must load it before calling Load.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	cfg.Server.AllowedHosts = splitList(cfg.Server.AllowedHostsRaw)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate performs business-rule validation on the loaded configuration.
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes (got %d)", len(c.JWT.Secret))
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}

	if c.TLS.Enabled {
		if c.TLS.CertPath == "" {
			return fmt.Errorf("TLS_CERT_PATH is required when TLS_ENABLED=true")
		}
		if c.TLS.KeyPath == "" {
			return fmt.Errorf("TLS_KEY_PATH is required when TLS_ENABLED=true")
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
