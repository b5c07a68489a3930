// Package config reads process configuration from the environment. A .env
// file, when present, is loaded by the cmd entrypoints before Load runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // business timezone must resolve on minimal images
)

type Database struct {
	Host        string
	User        string
	Password    string
	Name        string
	Port        string
	SSLMode     string
	AutoMigrate bool
}

func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// Tracking holds the ingestion, session and fanout tunables.
type Tracking struct {
	DistanceThresholdMeters float64
	TimeThreshold           time.Duration
	AutoOffTimeout          time.Duration
	ReaperInterval          time.Duration
	Timezone                string
	RetentionPeriod         time.Duration
	RetentionInterval       time.Duration
	BroadcastThrottle       time.Duration
	ThrottleIdleTTL         time.Duration
	StoreTimeout            time.Duration
}

type Config struct {
	AppEnv      string
	Port        string
	CORSOrigin  string
	JWTSecret   string
	RedisAddr   string
	KafkaBroker string
	Database    Database
	Tracking    Tracking
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location resolves the business timezone used for daily summaries.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Tracking.Timezone)
}

func Load() (Config, error) {
	var errs []error

	cfg := Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "5000"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		Database: Database{
			Host:        getEnv("DB_HOST", "localhost"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    os.Getenv("DB_PASSWORD"),
			Name:        getEnv("DB_NAME", "employee_tracking"),
			Port:        getEnv("DB_PORT", "5432"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getBool("DB_AUTO_MIGRATE", true, &errs),
		},
		Tracking: Tracking{
			DistanceThresholdMeters: getFloat("LOCATION_DISTANCE_THRESHOLD", 10, &errs),
			TimeThreshold:           getSeconds("LOCATION_TIME_THRESHOLD", 30, &errs),
			AutoOffTimeout:          getSeconds("AUTO_OFF_TIMEOUT", 3600, &errs),
			ReaperInterval:          getDuration("REAPER_INTERVAL", 5*time.Minute, &errs),
			Timezone:                getEnv("TIMEZONE", "Asia/Dhaka"),
			RetentionPeriod:         time.Duration(getInt("LOCATION_RETENTION_DAYS", 90, &errs)) * 24 * time.Hour,
			RetentionInterval:       getDuration("RETENTION_INTERVAL", time.Hour, &errs),
			BroadcastThrottle:       getDuration("BROADCAST_THROTTLE", time.Second, &errs),
			ThrottleIdleTTL:         getDuration("THROTTLE_IDLE_TTL", 10*time.Minute, &errs),
			StoreTimeout:            getDuration("STORE_TIMEOUT", 5*time.Second, &errs),
		},
	}

	if err := cfg.validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	t := c.Tracking

	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if t.DistanceThresholdMeters < 0 {
		errs = append(errs, errors.New("LOCATION_DISTANCE_THRESHOLD must be >= 0"))
	}
	if t.TimeThreshold < 0 {
		errs = append(errs, errors.New("LOCATION_TIME_THRESHOLD must be >= 0"))
	}
	if t.AutoOffTimeout <= 0 {
		errs = append(errs, errors.New("AUTO_OFF_TIMEOUT must be > 0"))
	}
	if t.ReaperInterval <= 0 {
		errs = append(errs, errors.New("REAPER_INTERVAL must be > 0"))
	}
	if t.RetentionPeriod <= 0 {
		errs = append(errs, errors.New("LOCATION_RETENTION_DAYS must be > 0"))
	}
	if _, err := time.LoadLocation(t.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", t.Timezone, err))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64, errs *[]error) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func getBool(key string, fallback bool, errs *[]error) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

// getSeconds reads a plain integer number of seconds, the unit the mobile
// and ops teams configure thresholds in.
func getSeconds(key string, fallback int, errs *[]error) time.Duration {
	return time.Duration(getInt(key, fallback, errs)) * time.Second
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}
