// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverBadger = "badger"
	DriverMongo  = "mongo"

	// MailPolicyBestEffort keeps the account when the verification mail fails.
	MailPolicyBestEffort = "best-effort"
	// MailPolicyRollback deletes the account when the verification mail fails.
	MailPolicyRollback = "rollback"
)

var ErrMissingSecret = errors.New("JWT_SECRET must be set")

type Store struct {
	Driver        string
	BadgerPath    string
	MongoURI      string
	MongoDatabase string
}

type Auth struct {
	JWTSecret       string
	TokenTTL        time.Duration
	VerificationTTL time.Duration
	BcryptCost      int
}

type Mail struct {
	SendGridAPIKey string
	SendGridHost   string
	From           string
	FromName       string
	BaseURL        string
}

type Policy struct {
	RequireVerifiedEmail bool
	AutoVerifySignups    bool
	SignupMailPolicy     string
}

type RateLimit struct {
	Max    int
	Window time.Duration
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	Store           Store
	Auth            Auth
	Mail            Mail
	Policy          Policy
	RateLimit       RateLimit
	Log             Log
}

// Load reads envFile when it exists, then builds a Config from the
// process environment. Variables already set in the environment win over
// the file.
func Load(envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	port := getEnvAsInt("PORT", 5000)
	cfg := &Config{
		Port:            port,
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
		Store:           storeFromEnv(),
		Auth: Auth{
			JWTSecret:       getEnv("JWT_SECRET", ""),
			TokenTTL:        getEnvAsDuration("JWT_TTL", time.Hour),
			VerificationTTL: getEnvAsDuration("VERIFICATION_TTL", time.Hour),
			BcryptCost:      getEnvAsInt("BCRYPT_COST", 10),
		},
		Mail: Mail{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			SendGridHost:   getEnv("SENDGRID_HOST", "https://api.sendgrid.com"),
			From:           getEnv("MAIL_FROM", "no-reply@quill.local"),
			FromName:       getEnv("MAIL_FROM_NAME", "Quill"),
			BaseURL:        strings.TrimRight(getEnv("BASE_URL", fmt.Sprintf("http://localhost:%d/api/users", port)), "/"),
		},
		Policy: Policy{
			RequireVerifiedEmail: getEnvBool("REQUIRE_VERIFIED_EMAIL", false),
			AutoVerifySignups:    getEnvBool("AUTO_VERIFY_SIGNUPS", false),
			SignupMailPolicy:     strings.ToLower(getEnv("SIGNUP_MAIL_POLICY", MailPolicyBestEffort)),
		},
		RateLimit: RateLimit{
			Max:    getEnvAsInt("RATE_LIMIT_MAX", 100),
			Window: getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		Log: Log{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStore reads only the storage settings. The database maintenance
// commands use it so they run without auth or mail settings.
func LoadStore(envFile string) (Store, error) {
	if err := loadEnvFile(envFile); err != nil {
		return Store{}, err
	}
	return storeFromEnv(), nil
}

func loadEnvFile(envFile string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}

func storeFromEnv() Store {
	return Store{
		Driver:        strings.ToLower(getEnv("STORE_DRIVER", DriverBadger)),
		BadgerPath:    getEnv("BADGER_PATH", "data/badger"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "quill"),
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingSecret
	}
	switch c.Store.Driver {
	case DriverBadger, DriverMongo:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Policy.SignupMailPolicy {
	case MailPolicyBestEffort, MailPolicyRollback:
	default:
		return fmt.Errorf("unknown SIGNUP_MAIL_POLICY %q", c.Policy.SignupMailPolicy)
	}
	if c.RateLimit.Max < 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
