package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, admin password), checked after CLI overrides
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	defaultEnvFile = ".env"
	// databaseFromEnv is the value -d takes when given without a URL.
	databaseFromEnv = "env"
)

var (
	ErrMissingPort          = errors.New("port is required (PORT or --port)")
	ErrMissingAdminPassword = errors.New("admin password is required (HTTP_PASSWORD or --key)")
	ErrMissingDatabaseURL   = errors.New("database is enabled but no url is set (DATABASE_URL or --database <url>)")
	ErrInvalidSweepInterval = errors.New("sweep interval must be positive (SWEEP_INTERVAL)")
	ErrInvalidRetention     = errors.New("slot retention must be positive (SLOT_RETENTION)")
)

type Config struct {
	Server   ServerConfig
	Admin    AdminConfig
	DB       DBConfig
	Booking  BookingConfig
	Frontend FrontendConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"PORT"`
	SSEKeepAlive time.Duration `envconfig:"SSE_KEEPALIVE" default:"15s"`
}

type AdminConfig struct {
	// Password is either the plain shared secret or its bcrypt hash.
	Password string `envconfig:"HTTP_PASSWORD"`
}

type DBConfig struct {
	Enabled         bool          `envconfig:"DB_ENABLED" default:"false"`
	URL             string        `envconfig:"DATABASE_URL"`
	ConnectRetries  int           `envconfig:"DB_CONNECT_RETRIES" default:"30"`
	RetryInterval   time.Duration `envconfig:"DB_RETRY_INTERVAL" default:"1s"`
	MaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	MirrorQueueSize int           `envconfig:"MIRROR_QUEUE_SIZE" default:"256"`
	MirrorTimeout   time.Duration `envconfig:"MIRROR_TIMEOUT" default:"5s"`
}

type BookingConfig struct {
	Retention        time.Duration `envconfig:"SLOT_RETENTION" default:"24h"`
	SweepInterval    time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	SeedExampleSlots int           `envconfig:"SEED_EXAMPLE_SLOTS" default:"0"`
}

type FrontendConfig struct {
	Title string `envconfig:"WEBSITE_TITLE" default:"Timeslot Booking"`
	Path  string `envconfig:"FRONTEND_PATH" default:"web/index.html"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Admin-Password"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Load reads the .env file (if any), the environment and then applies the
// command line overrides in args.
func Load(args []string) (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.applyFlags(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig() (Config, error) {
	return Load(os.Args[1:])
}

func NewFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("slot-booking-manager", pflag.ContinueOnError)
	flagSet.StringP("key", "k", "", "admin password (overrides HTTP_PASSWORD)")
	flagSet.StringP("port", "p", "", "listen port (overrides PORT)")
	flagSet.StringP("database", "d", "", "enable postgres persistence, optionally with a url (defaults to DATABASE_URL)")
	flagSet.Lookup("database").NoOptDefVal = databaseFromEnv
	return flagSet
}

func (c *Config) applyFlags(args []string) error {
	flagSet := NewFlagSet()
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if key, _ := flagSet.GetString("key"); key != "" {
		c.Admin.Password = key
	}
	if port, _ := flagSet.GetString("port"); port != "" {
		c.Server.Port = port
	}
	if flagSet.Changed("database") {
		c.DB.Enabled = true
		if url, _ := flagSet.GetString("database"); url != databaseFromEnv {
			c.DB.URL = url
		}
	}
	return nil
}

func (c Config) Validate() error {
	if c.Server.Port == "" {
		return ErrMissingPort
	}
	if c.Admin.Password == "" {
		return ErrMissingAdminPassword
	}
	if c.DB.Enabled && c.DB.URL == "" {
		return ErrMissingDatabaseURL
	}
	if c.Booking.SweepInterval <= 0 {
		return ErrInvalidSweepInterval
	}
	if c.Booking.Retention <= 0 {
		return ErrInvalidRetention
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8889", // Test port
			SSEKeepAlive: 15 * time.Second,
		},
		Admin: AdminConfig{
			Password: "test-admin-password",
		},
		DB: DBConfig{
			Enabled:         false,
			ConnectRetries:  1,
			RetryInterval:   100 * time.Millisecond,
			MaxConns:        4,
			MirrorQueueSize: 64,
			MirrorTimeout:   time.Second,
		},
		Booking: BookingConfig{
			Retention:     24 * time.Hour,
			SweepInterval: time.Minute,
		},
		Frontend: FrontendConfig{
			Title: "Test Booking",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Admin-Password"},
			MaxAge:       12 * time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
	}
}
