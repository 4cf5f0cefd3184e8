package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"orderflow/internal/pkg/errs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string

	// StatusConfigPath overrides the embedded status graph when set.
	StatusConfigPath string

	StorageTimeout    time.Duration
	DispatchTimeout   time.Duration
	DispatchWorkers   int
	DispatchQueueSize int

	ActionRetention       time.Duration
	NotificationRetention time.Duration
	RetentionSchedule     string

	OtelExporterURL string
}

// ConfigFromEnv reads every key through getenv. Unset durations and sizes
// keep their defaults.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:               getenv("HTTP_PORT"),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 getenv("DB_PORT"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              getenv("DB_SSLMODE"),
		KafkaHost:              getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		StatusConfigPath:       getenv("STATUS_CONFIG_PATH"),
		RetentionSchedule:      getenv("RETENTION_SCHEDULE"),
		OtelExporterURL:        getenv("OTEL_EXPORTER_URL"),
	}

	err := errors.Join(
		parseDuration(getenv, "STORAGE_TIMEOUT", 5*time.Second, &cfg.StorageTimeout),
		parseDuration(getenv, "DISPATCH_TIMEOUT", 5*time.Second, &cfg.DispatchTimeout),
		parseInt(getenv, "DISPATCH_WORKERS", 4, &cfg.DispatchWorkers),
		parseInt(getenv, "DISPATCH_QUEUE_SIZE", 64, &cfg.DispatchQueueSize),
		parseDuration(getenv, "ACTION_RETENTION", 0, &cfg.ActionRetention),
		parseDuration(getenv, "NOTIFICATION_RETENTION", 90*24*time.Hour, &cfg.NotificationRetention),
	)
	if err != nil {
		return Config{}, err
	}

	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}
	if cfg.DBSslMode == "" {
		cfg.DBSslMode = "disable"
	}
	if cfg.KafkaOrderChangedTopic == "" {
		cfg.KafkaOrderChangedTopic = "order.status-changed"
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings the service cannot start without.
func (c Config) Validate() error {
	var problems []error
	for name, value := range map[string]string{
		"DB_HOST": c.DBHost,
		"DB_PORT": c.DBPort,
		"DB_USER": c.DBUser,
		"DB_NAME": c.DBName,
	} {
		if value == "" {
			problems = append(problems, errs.NewValueIsRequiredError(name))
		}
	}
	if c.StorageTimeout <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("STORAGE_TIMEOUT", c.StorageTimeout, "1ns", "-"))
	}
	if c.DispatchTimeout <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("DISPATCH_TIMEOUT", c.DispatchTimeout, "1ns", "-"))
	}
	if c.DispatchWorkers < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("DISPATCH_WORKERS", c.DispatchWorkers, 1, "-"))
	}
	if c.DispatchQueueSize < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("DISPATCH_QUEUE_SIZE", c.DispatchQueueSize, 1, "-"))
	}
	if c.ActionRetention < 0 || c.NotificationRetention < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("retention must not be negative"))
	}
	return errors.Join(problems...)
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty means the publisher is off.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(getenv func(string) string, key string, def time.Duration, dst *time.Duration) error {
	raw := getenv(key)
	if raw == "" {
		*dst = def
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	*dst = d
	return nil
}

func parseInt(getenv func(string) string, key string, def int, dst *int) error {
	raw := getenv(key)
	if raw == "" {
		*dst = def
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	*dst = n
	return nil
}
