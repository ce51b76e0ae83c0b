package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

type AppConfig struct {
	Environment string          `koanf:"environment"`
	HTTP        HTTPConfig      `koanf:"http"`
	Database    DatabaseConfig  `koanf:"database"`
	Redis       RedisConfig     `koanf:"redis"`
	Token       TokenConfig     `koanf:"token"`
	Password    PasswordConfig  `koanf:"password"`
	Telemetry   TelemetryConfig `koanf:"telemetry"`
	Log         LogConfig       `koanf:"log"`
}

type HTTPConfig struct {
	Port         string        `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	EnforceHTTPS bool          `koanf:"enforce_https"`
}

type DatabaseConfig struct {
	// Driver is one of sqlite, postgres or memory.
	Driver     string `koanf:"driver"`
	Path       string `koanf:"path"`
	URL        string `koanf:"url"`
	LogQueries bool   `koanf:"log_queries"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type TokenConfig struct {
	Secret string        `koanf:"secret"`
	Issuer string        `koanf:"issuer"`
	TTL    time.Duration `koanf:"ttl"`
	// Store is where issued tokens are persisted: database or redis.
	Store string `koanf:"store"`
}

type PasswordConfig struct {
	Algorithm  string `koanf:"algorithm"`
	BcryptCost int    `koanf:"bcrypt_cost"`
}

type TelemetryConfig struct {
	Enabled        bool   `koanf:"enabled"`
	ServiceName    string `koanf:"service_name"`
	ServiceVersion string `koanf:"service_version"`
	MetricsPort    string `koanf:"metrics_port"`
	OTLPEndpoint   string `koanf:"otlp_endpoint"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment: "development",
		HTTP: HTTPConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "database.db",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Token: TokenConfig{
			Issuer: "loginapp",
			TTL:    3 * time.Hour,
			Store:  "database",
		},
		Password: PasswordConfig{
			Algorithm: "bcrypt",
		},
		Telemetry: TelemetryConfig{
			Enabled:        false,
			ServiceName:    "loginapp",
			ServiceVersion: "1.0.0",
			MetricsPort:    "9091",
			OTLPEndpoint:   "localhost:4317",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// envKeys maps the environment variables the service has always honoured to
// config keys.
var envKeys = map[string]string{
	"PORT":              "http.port",
	"DATABASE_DRIVER":   "database.driver",
	"DATABASE_PATH":     "database.path",
	"DATABASE_URL":      "database.url",
	"JWT_SECRET":        "token.secret",
	"TOKEN_STORE":       "token.store",
	"REDIS_ADDR":        "redis.addr",
	"REDIS_PASSWORD":    "redis.password",
	"OTLP_ENDPOINT":     "telemetry.otlp_endpoint",
	"TELEMETRY_ENABLED": "telemetry.enabled",
	"LOG_LEVEL":         "log.level",
	"ENFORCE_HTTPS":     "http.enforce_https",
}

// Load layers the defaults, an optional YAML file (--config), environment
// variables and finally any flag set on the command line.
func Load(args []string) (*AppConfig, error) {
	defaults := GetDefaultConfig()

	fs := newFlagSet(defaults)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path, _ := fs.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file %s: %w", path, err)
		}
	}

	for env, key := range envKeys {
		if value, ok := os.LookupEnv(env); ok {
			if err := k.Set(key, value); err != nil {
				return nil, err
			}
		}
	}

	if os.Getenv("GIN_MODE") == "release" {
		if err := k.Set("environment", "production"); err != nil {
			return nil, err
		}

		if _, ok := os.LookupEnv("ENFORCE_HTTPS"); !ok {
			if err := k.Set("http.enforce_https", true); err != nil {
				return nil, err
			}
		}
	}

	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, fmt.Errorf("error loading flags: %w", err)
	}

	cfg := defaults

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newFlagSet(defaults *AppConfig) *pflag.FlagSet {
	fs := pflag.NewFlagSet("loginapp", pflag.ContinueOnError)

	fs.String("config", "", "path to a YAML config file")
	fs.String("environment", defaults.Environment, "deployment environment")
	fs.String("http.port", defaults.HTTP.Port, "HTTP listen port")
	fs.Bool("http.enforce_https", defaults.HTTP.EnforceHTTPS, "redirect plain HTTP requests to HTTPS")
	fs.String("database.driver", defaults.Database.Driver, "storage backend: sqlite, postgres or memory")
	fs.String("database.path", defaults.Database.Path, "sqlite database path")
	fs.String("database.url", defaults.Database.URL, "postgres connection URL")
	fs.Bool("database.log_queries", defaults.Database.LogQueries, "log every SQL query")
	fs.String("token.store", defaults.Token.Store, "token persistence: database or redis")
	fs.Duration("token.ttl", defaults.Token.TTL, "access token lifetime")
	fs.String("password.algorithm", defaults.Password.Algorithm, "password hashing for new users: bcrypt or argon2id")
	fs.Bool("telemetry.enabled", defaults.Telemetry.Enabled, "export traces and serve metrics")
	fs.String("log.level", defaults.Log.Level, "log level")

	return fs
}

func (c *AppConfig) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "sqlite", "memory":
	case "postgres":
		if c.Database.URL == "" {
			errs = append(errs, errors.New("database.url is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database.driver %q", c.Database.Driver))
	}

	switch c.Token.Store {
	case "database", "redis":
	default:
		errs = append(errs, fmt.Errorf("unknown token.store %q", c.Token.Store))
	}

	if c.Token.Secret == "" {
		errs = append(errs, errors.New("token.secret (JWT_SECRET) is required"))
	}

	if _, err := strconv.Atoi(c.HTTP.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid http.port %q", c.HTTP.Port))
	}

	return errors.Join(errs...)
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}
