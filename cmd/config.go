package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	StorageDriver     string
	OutOfOrderPolicy  string
	LogLevel          string
	LogsDirectory     string
	AMQPURL           string
	AMQPExchange      string
	DelayScanSchedule string
	CapacitySchedule  string
	MetricsNamespace  string
}

// LoadConfig reads the configuration from the environment. Values from the
// given .env files are loaded first; a missing file is not an error.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		HTTPPort:          getEnvOrDefault("HTTP_PORT", "8080"),
		DBHost:            getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:            getEnvOrDefault("DB_PORT", "5432"),
		DBUser:            getEnvOrDefault("DB_USER", "postgres"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getEnvOrDefault("DB_NAME", "logistics"),
		DBSslMode:         getEnvOrDefault("DB_SSLMODE", "disable"),
		StorageDriver:     strings.ToLower(getEnvOrDefault("STORAGE_DRIVER", StorageDriverPostgres)),
		OutOfOrderPolicy:  getEnvOrDefault("OUT_OF_ORDER_POLICY", "reject"),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		LogsDirectory:     os.Getenv("LOGS_DIRECTORY"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		AMQPExchange:      getEnvOrDefault("AMQP_EXCHANGE", "shipments"),
		DelayScanSchedule: os.Getenv("DELAY_SCAN_SCHEDULE"),
		CapacitySchedule:  os.Getenv("CAPACITY_SNAPSHOT_SCHEDULE"),
		MetricsNamespace:  getEnvOrDefault("METRICS_NAMESPACE", "logistics"),
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
