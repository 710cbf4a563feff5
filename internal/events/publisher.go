package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher writes order events to Kafka. Publishing is fire-and-forget:
// a failed write is logged and never surfaced to the request, so order
// creation does not depend on the broker being up. A nil Publisher is valid
// and publishes nothing.
type Publisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewPublisher returns nil when brokersCSV holds no brokers, which disables
// publishing entirely.
func NewPublisher(brokersCSV, topic string, log *zap.Logger) *Publisher {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer, log: log}
}

func (p *Publisher) OrderCreated(ctx context.Context, event OrderCreated) {
	if p == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error("failed to marshal order event", zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish order event",
			zap.String("order_id", event.OrderID),
			zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
