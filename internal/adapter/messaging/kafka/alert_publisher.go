package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"transfer-risk-engine/config"
	"transfer-risk-engine/internal/core/domain"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// AlertPublisher implements ports.AlertPublisher on a Kafka topic.
// Messages are keyed by account id so one account's alerts keep their order.
type AlertPublisher struct {
	writer messageWriter
	topic  string
	log    zerolog.Logger
}

// NewAlertPublisher creates a synchronous writer for cfg.AlertTopic.
func NewAlertPublisher(cfg config.KafkaConfig, log zerolog.Logger) (*AlertPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if cfg.AlertTopic == "" {
		return nil, errors.New("kafka: alert topic is required")
	}

	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.AlertTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.AlertTopic).
		Msg("Kafka alert publisher configured")

	return newAlertPublisher(w, cfg.AlertTopic, log), nil
}

func newAlertPublisher(w messageWriter, topic string, log zerolog.Logger) *AlertPublisher {
	return &AlertPublisher{writer: w, topic: topic, log: log}
}

// Publish writes one alert as JSON.
func (p *AlertPublisher) Publish(ctx context.Context, alert *domain.ComplianceAlert) error {
	if alert == nil {
		return errors.New("kafka: nil alert")
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(alert.AccountID),
		Value: payload,
		Time:  alert.CreatedAt,
		Headers: []kafkago.Header{
			{Key: "alert_type", Value: []byte(alert.Type)},
			{Key: "rule", Value: []byte(alert.Rule)},
			{Key: "severity", Value: []byte(alert.Severity)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *AlertPublisher) Close() error {
	return p.writer.Close()
}
