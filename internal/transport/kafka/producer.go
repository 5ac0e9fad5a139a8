package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/logx"
)

var newSyncProducer = sarama.NewSyncProducer

// StatusProducer publishes StatusChanged events keyed by delivery id, so one delivery's
// events stay in one partition and keep their order.
type StatusProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
}

// NewStatusProducer returns nil when Kafka is not configured.
func NewStatusProducer(logger logx.Logger, brokers []string, topic string) (*StatusProducer, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		logger.Info("kafka status producer disabled")
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 3
	cfg.Net.MaxOpenRequests = 1

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &StatusProducer{producer: p, topic: topic, logger: logger}, nil
}

// PublishStatus sends one event. Broker failures wrap apperr.ErrTransient.
func (p *StatusProducer) PublishStatus(ctx context.Context, d *domain.Delivery, ev domain.StatusEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(FromStatusEvent(d, ev))
	if err != nil {
		return fmt.Errorf("encode status event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.DeliveryID),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return fmt.Errorf("%w: publish status event: %v", apperr.ErrTransient, err)
	}

	p.logger.Debug("status event published",
		logx.String("delivery_id", ev.DeliveryID),
		logx.String("to", string(ev.To)),
		logx.Int("partition", int(partition)),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close flushes and closes the producer.
func (p *StatusProducer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
