package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	TLS           bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CDPConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

type SchedulerConfig struct {
	DueScanCron   string
	DueScanWindow time.Duration
}

type GRPCConfig struct {
	TLSCertFile string
	TLSKeyFile  string
	Reflection  bool
}

// AuthConfig selects JWT verification. Leaving both the secret and the
// public key file empty disables authentication.
type AuthConfig struct {
	JWTSecret        string
	JWTPublicKeyFile string
	JWTIssuer        string
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	GRPCPort      int
	HTTPPort      int
	HTTPRateLimit int
	StoreBackend  string
	LockBackend   string
	EventBackend  string
	GRPC          GRPCConfig
	Auth          AuthConfig
	DB            DatabaseConfig
	Kafka         KafkaConfig
	Redis         RedisConfig
	CDP           CDPConfig
	Scheduler     SchedulerConfig
	Log           LogConfig
	OTLPEndpoint  string
	ServiceName   string
}

var defaults = map[string]any{
	"GRPC_PORT":                   9090,
	"HTTP_PORT":                   8080,
	"HTTP_RATE_LIMIT_RPS":         50,
	"GRPC_TLS_CERT_FILE":          "",
	"GRPC_TLS_KEY_FILE":           "",
	"GRPC_REFLECTION":             false,
	"JWT_SECRET":                  "",
	"JWT_PUBLIC_KEY_FILE":         "",
	"JWT_ISSUER":                  "aura-credit",
	"STORE_BACKEND":               "postgres",
	"LOCK_BACKEND":                "redis",
	"EVENT_BACKEND":               "kafka",
	"DB_HOST":                     "localhost",
	"DB_PORT":                     5432,
	"DB_USER":                     "aura",
	"DB_PASSWORD":                 "",
	"DB_NAME":                     "aura_credit",
	"DB_SSLMODE":                  "require",
	"KAFKA_BROKERS":               "localhost:9092",
	"KAFKA_TOPIC":                 "aura.credit.events",
	"KAFKA_TLS":                   false,
	"KAFKA_SASL_MECHANISM":        "",
	"KAFKA_SASL_USERNAME":         "",
	"KAFKA_SASL_PASSWORD":         "",
	"REDIS_ADDR":                  "localhost:6379",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"CDP_BASE_URL":                "",
	"CDP_TIMEOUT_SECONDS":         10,
	"CDP_MAX_RETRIES":             3,
	"DUE_SCAN_CRON":               "0 6 * * *",
	"DUE_SCAN_WINDOW_HOURS":       72,
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return Config{
		GRPCPort:      v.GetInt("GRPC_PORT"),
		HTTPPort:      v.GetInt("HTTP_PORT"),
		HTTPRateLimit: v.GetInt("HTTP_RATE_LIMIT_RPS"),
		StoreBackend:  strings.ToLower(v.GetString("STORE_BACKEND")),
		LockBackend:   strings.ToLower(v.GetString("LOCK_BACKEND")),
		EventBackend:  strings.ToLower(v.GetString("EVENT_BACKEND")),
		GRPC: GRPCConfig{
			TLSCertFile: v.GetString("GRPC_TLS_CERT_FILE"),
			TLSKeyFile:  v.GetString("GRPC_TLS_KEY_FILE"),
			Reflection:  v.GetBool("GRPC_REFLECTION"),
		},
		Auth: AuthConfig{
			JWTSecret:        v.GetString("JWT_SECRET"),
			JWTPublicKeyFile: v.GetString("JWT_PUBLIC_KEY_FILE"),
			JWTIssuer:        v.GetString("JWT_ISSUER"),
		},
		DB: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(v.GetString("KAFKA_BROKERS")),
			Topic:         v.GetString("KAFKA_TOPIC"),
			TLS:           v.GetBool("KAFKA_TLS"),
			SASLMechanism: v.GetString("KAFKA_SASL_MECHANISM"),
			SASLUsername:  v.GetString("KAFKA_SASL_USERNAME"),
			SASLPassword:  v.GetString("KAFKA_SASL_PASSWORD"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		CDP: CDPConfig{
			BaseURL:    v.GetString("CDP_BASE_URL"),
			Timeout:    time.Duration(v.GetInt("CDP_TIMEOUT_SECONDS")) * time.Second,
			MaxRetries: v.GetInt("CDP_MAX_RETRIES"),
		},
		Scheduler: SchedulerConfig{
			DueScanCron:   v.GetString("DUE_SCAN_CRON"),
			DueScanWindow: time.Duration(v.GetInt("DUE_SCAN_WINDOW_HOURS")) * time.Hour,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  "aura-credit",
	}
}

// Validate reports settings the selected backends cannot run without.
func (c Config) Validate() error {
	var errs []error
	switch c.StoreBackend {
	case "postgres":
		if c.DB.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required for the postgres store"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	switch c.LockBackend {
	case "redis":
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis lock"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown LOCK_BACKEND %q", c.LockBackend))
	}
	switch c.EventBackend {
	case "kafka":
		if len(c.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("KAFKA_BROKERS is required for the kafka event backend"))
		}
	case "log":
	default:
		errs = append(errs, fmt.Errorf("unknown EVENT_BACKEND %q", c.EventBackend))
	}
	if (c.GRPC.TLSCertFile == "") != (c.GRPC.TLSKeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}
	if c.Auth.JWTSecret != "" && c.Auth.JWTPublicKeyFile != "" {
		errs = append(errs, errors.New("set only one of JWT_SECRET and JWT_PUBLIC_KEY_FILE"))
	}
	if c.GRPCPort <= 0 || c.HTTPPort <= 0 {
		errs = append(errs, errors.New("GRPC_PORT and HTTP_PORT must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
