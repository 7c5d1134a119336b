// Package kafka publishes evaluated property curves to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/cryopcm-lab/internal/config"
	"github.com/couchcryptid/cryopcm-lab/internal/domain"
	"github.com/couchcryptid/cryopcm-lab/internal/observability"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

// Header keys set on every curve message.
const (
	HeaderPropertyType = "property_type"
	HeaderEvaluatedAt  = "evaluated_at"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces curve messages to the configured topic.
type Writer struct {
	writer  messageWriter
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Kafka producer for the curve topic.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaCurveTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		WriteTimeout: 10 * time.Second,
	}
	return newWriter(w, clockwork.NewRealClock(), logger, metrics)
}

func newWriter(w messageWriter, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	return &Writer{writer: w, clock: clock, logger: logger, metrics: metrics}
}

// PublishCurve writes one ready curve. Other outcomes are skipped.
func (w *Writer) PublishCurve(ctx context.Context, curve domain.Curve) error {
	if curve.Outcome != domain.CurveReady {
		return nil
	}
	msg, err := serializeToMessage(curve, w.clock.Now().UTC())
	if err != nil {
		w.metrics.PublishErrors.Inc()
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		w.metrics.PublishErrors.Inc()
		return fmt.Errorf("publish curve %s: %w", msg.Key, err)
	}
	w.metrics.CurvesPublished.Inc()
	w.logger.Debug("curve published", "key", string(msg.Key), "points", len(curve.Points))
	return nil
}

// Close flushes pending messages and closes the underlying kafka writer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// curveMessage is the JSON payload of a curve message.
type curveMessage struct {
	PcmID        string                     `json:"pcmId"`
	PropertyType string                     `json:"propertyType"`
	Definition   *domain.PropertyDefinition `json:"definition"`
	Points       []domain.CurvePoint        `json:"points"`
	EvaluatedAt  time.Time                  `json:"evaluatedAt"`
}

// MessageKey keys a curve by PCM and property so repeats land on one partition.
func MessageKey(pcmID, propertyType string) string {
	return pcmID + "|" + propertyType
}

// serializeToMessage marshals a curve into a Kafka message.
func serializeToMessage(curve domain.Curve, evaluatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(curveMessage{
		PcmID:        curve.PcmID,
		PropertyType: curve.PropertyType,
		Definition:   curve.Definition,
		Points:       curve.Points,
		EvaluatedAt:  evaluatedAt,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize curve: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(MessageKey(curve.PcmID, curve.PropertyType)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderPropertyType, Value: []byte(curve.PropertyType)},
			{Key: HeaderEvaluatedAt, Value: []byte(evaluatedAt.Format(time.RFC3339))},
		},
	}, nil
}
