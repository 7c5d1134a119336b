package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "rawdata/pcms.csv", cfg.PcmSource)
	assert.Equal(t, "documentation/property_data.csv", cfg.PropertySource)
	assert.Equal(t, 10*time.Second, cfg.SourceTimeout)
	assert.Equal(t, 3, cfg.SourceAttempts)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.Empty(t, cfg.S3Endpoint)
	assert.False(t, cfg.S3PathStyle)
	assert.Equal(t, "solid-specific-heat", cfg.DefaultProperty)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, "pcm-curves", cfg.KafkaCurveTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("PCM_SOURCE", "s3://cryo-data/pcms.csv")
	t.Setenv("PROPERTY_SOURCE", "https://example.org/property_data.csv")
	t.Setenv("SOURCE_TIMEOUT", "3s")
	t.Setenv("SOURCE_ATTEMPTS", "5")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("S3_PATH_STYLE", "true")
	t.Setenv("DEFAULT_PROPERTY", "density")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_CURVE_TOPIC", "custom-curves")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3://cryo-data/pcms.csv", cfg.PcmSource)
	assert.Equal(t, "https://example.org/property_data.csv", cfg.PropertySource)
	assert.Equal(t, 3*time.Second, cfg.SourceTimeout)
	assert.Equal(t, 5, cfg.SourceAttempts)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
	assert.Equal(t, "http://minio:9000", cfg.S3Endpoint)
	assert.True(t, cfg.S3PathStyle)
	assert.Equal(t, "density", cfg.DefaultProperty)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, "custom-curves", cfg.KafkaCurveTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidSourceTimeout(t *testing.T) {
	for _, v := range []string{"bad", "0s", "-2s"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("SOURCE_TIMEOUT", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "SOURCE_TIMEOUT")
		})
	}
}

func TestLoad_InvalidSourceAttempts(t *testing.T) {
	for _, v := range []string{"zero", "0", "11"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("SOURCE_ATTEMPTS", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "SOURCE_ATTEMPTS")
		})
	}
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_BrokersImplyEnabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", testBroker)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", testBroker)
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{testBroker}, cfg.KafkaBrokers)
}
