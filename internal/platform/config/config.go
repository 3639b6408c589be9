package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr     string
	LogLevel string

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
}

// DatabaseConfig configures the Postgres pool and transaction bounds.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	TxTimeout    time.Duration
}

// RedisConfig configures the session store connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit stream and notification topics.
// An empty broker list disables both publishers.
type KafkaConfig struct {
	Brokers           []string
	AuditTopic        string
	NotificationTopic string
	ProduceTimeout    time.Duration
}

// AuthConfig holds token secrets, per-kind expiries and cookie policy.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	EmailSecret   string

	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	ForgotPasswordTTL time.Duration
	RegisterTTL       time.Duration

	CookieSecure   bool
	SetPasswordURL string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:     getEnv("INTAKE_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 5),
			TxTimeout:    getDuration("DB_TX_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:           splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic:        getEnv("KAFKA_AUDIT_TOPIC", "intake.audit"),
			NotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "intake.notifications"),
			ProduceTimeout:    getDuration("KAFKA_PRODUCE_TIMEOUT", 2*time.Second),
		},
		Auth: AuthConfig{
			// Development defaults; production must override all three secrets.
			AccessSecret:      getEnv("JWT_SECRET_KEY", "dev-access-secret-change-me"),
			RefreshSecret:     getEnv("REFRESH_SECRET_KEY", "dev-refresh-secret-change-me"),
			EmailSecret:       getEnv("EMAIL_TOKEN_SECRET", "dev-email-secret-change-me"),
			AccessTokenTTL:    time.Duration(getInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
			RefreshTokenTTL:   time.Duration(getInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
			ForgotPasswordTTL: time.Duration(getInt("FORGOT_PASSWORD_TOKEN_EXPIRE_HOURS", 1)) * time.Hour,
			RegisterTTL:       time.Duration(getInt("REGISTER_TOKEN_EXPIRE_HOURS", 72)) * time.Hour,
			CookieSecure:      getBool("COOKIE_SECURE", true),
			SetPasswordURL:    getEnv("SET_PASSWORD_URL", "http://localhost:5173/set-password"),
		},
	}
}

// Validate rejects configurations that would weaken token separation.
func (s Server) Validate() error {
	a := s.Auth
	if a.AccessSecret == "" || a.RefreshSecret == "" || a.EmailSecret == "" {
		return errors.New("config: token secrets must not be empty")
	}
	if a.AccessSecret == a.RefreshSecret || a.AccessSecret == a.EmailSecret || a.RefreshSecret == a.EmailSecret {
		return errors.New("config: access, refresh and email secrets must differ")
	}
	if a.AccessTokenTTL <= 0 || a.RefreshTokenTTL <= 0 || a.ForgotPasswordTTL <= 0 || a.RegisterTTL <= 0 {
		return errors.New("config: token expiries must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
