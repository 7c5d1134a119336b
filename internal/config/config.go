package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Source locations: a file path, file://, http(s):// or s3://bucket/key.
	PcmSource      string
	PropertySource string
	SourceTimeout  time.Duration
	SourceAttempts int

	// S3 settings used when a source is an s3:// URI.
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	DefaultProperty string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Curve export configuration.
	KafkaBrokers    []string
	KafkaEnabled    bool
	KafkaCurveTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	sourceTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("SOURCE_TIMEOUT", "10s"))
	if err != nil || sourceTimeout <= 0 {
		return nil, errors.New("invalid SOURCE_TIMEOUT")
	}

	sourceAttempts := 3
	if v := os.Getenv("SOURCE_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 10 {
			return nil, errors.New("SOURCE_ATTEMPTS must be an integer between 1 and 10")
		}
		sourceAttempts = n
	}

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		PcmSource:      sharedcfg.EnvOrDefault("PCM_SOURCE", "rawdata/pcms.csv"),
		PropertySource: sharedcfg.EnvOrDefault("PROPERTY_SOURCE", "documentation/property_data.csv"),
		SourceTimeout:  sourceTimeout,
		SourceAttempts: sourceAttempts,

		S3Region:    sharedcfg.EnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3PathStyle: strings.EqualFold(os.Getenv("S3_PATH_STYLE"), "true"),

		DefaultProperty: sharedcfg.EnvOrDefault("DEFAULT_PROPERTY", "solid-specific-heat"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:    brokers,
		KafkaEnabled:    kafkaEnabled,
		KafkaCurveTopic: sharedcfg.EnvOrDefault("KAFKA_CURVE_TOPIC", "pcm-curves"),
	}

	if cfg.PcmSource == "" {
		return nil, errors.New("PCM_SOURCE is required")
	}
	if cfg.PropertySource == "" {
		return nil, errors.New("PROPERTY_SOURCE is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaCurveTopic == "" {
		return nil, errors.New("KAFKA_CURVE_TOPIC is required when export is enabled")
	}

	return cfg, nil
}
