package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	ordersport "canteenWeb/internal/modules/orders/application/port"
	orders "canteenWeb/internal/modules/orders/domain"
	"canteenWeb/internal/modules/realtime/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order events to one topic so every gateway instance can fan them out.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		topic: topic,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event orders.Event) error {
	record, err := encodeEvent(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, record); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Topic(), p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func encodeEvent(event orders.Event) (kafka.Message, error) {
	return encodeMessage(domain.FromOrderEvent(event))
}

var _ ordersport.EventPublisher = (*KafkaPublisher)(nil)
