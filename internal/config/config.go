package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yml"

type AppConfig struct {
	DefaultCountryCode string `yaml:"default_country_code"`
	Namespace          string `yaml:"namespace"`
}

type BackendConfig struct {
	BaseURL    string `yaml:"base_url"`
	Timeout    string `yaml:"timeout"`
	RetryCount int    `yaml:"retry_count"`
	RetryWait  string `yaml:"retry_wait"`
}

type PushConfig struct {
	AppID string `yaml:"app_id"`
}

type CredentialsConfig struct {
	AwaitAttempts int    `yaml:"await_attempts"`
	AwaitInterval string `yaml:"await_interval"`
}

type VerifyConfig struct {
	ResendWindow string `yaml:"resend_window"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DevServerConfig struct {
	Port      int    `yaml:"port"`
	GinMode   string `yaml:"gin_mode"`
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type TwilioConfig struct {
	AccountSID       string `yaml:"account_sid"`
	AuthToken        string `yaml:"auth_token"`
	VerifyServiceSID string `yaml:"verify_service_sid"`
}

type ConfigFile struct {
	App         AppConfig         `yaml:"app"`
	Backend     BackendConfig     `yaml:"backend"`
	Push        PushConfig        `yaml:"push"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Verify      VerifyConfig      `yaml:"verify"`
	Storage     StorageConfig     `yaml:"storage"`
	Redis       RedisConfig       `yaml:"redis"`
	Log         LogConfig         `yaml:"log"`
	DevServer   DevServerConfig   `yaml:"devserver"`
	Twilio      TwilioConfig      `yaml:"twilio"`
}

type Config struct {
	DefaultCountryCode string
	Namespace          string

	BackendURL        string
	BackendTimeout    time.Duration
	BackendRetryCount int
	BackendRetryWait  time.Duration

	PushAppID string

	AwaitAttempts int
	AwaitInterval time.Duration
	ResendWindow  time.Duration

	StorageDriver string
	StoragePath   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string

	DevPort          string
	GinMode          string
	JWTSecret        string
	JWTIssuer        string
	AccessTTL        time.Duration
	TwilioSID        string
	TwilioToken      string
	TwilioServiceSID string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func defaults() ConfigFile {
	return ConfigFile{
		App:         AppConfig{DefaultCountryCode: "+91", Namespace: "localhub"},
		Backend:     BackendConfig{Timeout: "10s", RetryCount: 2, RetryWait: "500ms"},
		Credentials: CredentialsConfig{AwaitAttempts: 10, AwaitInterval: "1s"},
		Verify:      VerifyConfig{ResendWindow: "0s"},
		Storage:     StorageConfig{Driver: "file", Path: "~/.localhub/store.yml"},
		Redis:       RedisConfig{Addr: "localhost:6379"},
		Log:         LogConfig{Level: "info", Format: "text"},
		DevServer:   DevServerConfig{Port: 8080, GinMode: "release", JWTIssuer: "localhub", AccessTTL: "24h"},
	}
}

// LoadEnvFile loads variables from a dotenv file; a missing file is not an error
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not load env file %s: %w", path, err)
	}
	return nil
}

// Load reads the YAML file at path over built-in defaults, then applies
// environment overrides. A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	file := defaults()
	if err := loadConfigFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	backendTimeout, err := time.ParseDuration(env("BACKEND_TIMEOUT", file.Backend.Timeout))
	if err != nil {
		return nil, fmt.Errorf("invalid backend timeout: %w", err)
	}
	retryWait, err := time.ParseDuration(env("BACKEND_RETRY_WAIT", file.Backend.RetryWait))
	if err != nil {
		return nil, fmt.Errorf("invalid backend retry wait: %w", err)
	}
	awaitInterval, err := time.ParseDuration(env("CREDENTIALS_AWAIT_INTERVAL", file.Credentials.AwaitInterval))
	if err != nil {
		return nil, fmt.Errorf("invalid credentials await interval: %w", err)
	}
	resendWindow, err := time.ParseDuration(env("VERIFY_RESEND_WINDOW", file.Verify.ResendWindow))
	if err != nil {
		return nil, fmt.Errorf("invalid verify resend window: %w", err)
	}
	accessTTL, err := time.ParseDuration(env("JWT_ACCESS_TTL", file.DevServer.AccessTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	retryCount, err := envInt("BACKEND_RETRY_COUNT", file.Backend.RetryCount)
	if err != nil {
		return nil, err
	}
	awaitAttempts, err := envInt("CREDENTIALS_AWAIT_ATTEMPTS", file.Credentials.AwaitAttempts)
	if err != nil {
		return nil, err
	}
	redisDB, err := envInt("REDIS_DB", file.Redis.DB)
	if err != nil {
		return nil, err
	}
	port, err := envInt("DEVSERVER_PORT", file.DevServer.Port)
	if err != nil {
		return nil, err
	}

	return &Config{
		DefaultCountryCode: env("DEFAULT_COUNTRY_CODE", file.App.DefaultCountryCode),
		Namespace:          env("STORE_NAMESPACE", file.App.Namespace),
		BackendURL:         env("BACKEND_URL", file.Backend.BaseURL),
		BackendTimeout:     backendTimeout,
		BackendRetryCount:  retryCount,
		BackendRetryWait:   retryWait,
		PushAppID:          env("PUSH_APP_ID", file.Push.AppID),
		AwaitAttempts:      awaitAttempts,
		AwaitInterval:      awaitInterval,
		ResendWindow:       resendWindow,
		StorageDriver:      env("STORAGE_DRIVER", file.Storage.Driver),
		StoragePath:        env("STORAGE_PATH", file.Storage.Path),
		RedisAddr:          env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword:      env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:            redisDB,
		LogLevel:           env("LOG_LEVEL", file.Log.Level),
		LogFormat:          env("LOG_FORMAT", file.Log.Format),
		DevPort:            strconv.Itoa(port),
		GinMode:            env("GIN_MODE", file.DevServer.GinMode),
		JWTSecret:          env("JWT_SECRET", file.DevServer.JWTSecret),
		JWTIssuer:          env("JWT_ISSUER", file.DevServer.JWTIssuer),
		AccessTTL:          accessTTL,
		TwilioSID:          env("TWILIO_ACCOUNT_SID", file.Twilio.AccountSID),
		TwilioToken:        env("TWILIO_AUTH_TOKEN", file.Twilio.AuthToken),
		TwilioServiceSID:   env("TWILIO_VERIFY_SERVICE_SID", file.Twilio.VerifyServiceSID),
	}, nil
}

func loadConfigFile(path string, into *ConfigFile) error {
	if path == "" {
		return nil
	}
	bytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read config file at %s: %w", path, err)
	}
	if err := yaml.Unmarshal(bytes, into); err != nil {
		return fmt.Errorf("could not parse config yaml: %w", err)
	}
	return nil
}

// Validate checks the settings every device-side command needs
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("backend base URL is required")
	}
	if c.DefaultCountryCode == "" {
		return errors.New("default country code is required")
	}
	if c.AwaitAttempts < 1 {
		return errors.New("credentials await attempts must be positive")
	}
	switch c.StorageDriver {
	case "file":
		if c.StoragePath == "" {
			return errors.New("storage path is required for the file driver")
		}
	case "redis":
		if c.RedisAddr == "" {
			return errors.New("redis address is required for the redis driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	return nil
}

// ValidateDevServer checks the settings the development backend needs
func (c *Config) ValidateDevServer() error {
	if c.JWTSecret == "" {
		return errors.New("JWT secret is required")
	}
	return nil
}
