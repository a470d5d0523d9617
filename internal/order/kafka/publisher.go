package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/mvaldivia/calzado-store/internal/order/domain"
)

// Producer is satisfied by *kafka.Writer.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}
}

// Publisher emits OrderPlaced events keyed by order id. Publishing is
// best-effort: failures are logged and reported, never retried.
type Publisher struct {
	log      *slog.Logger
	producer Producer
}

func NewPublisher(log *slog.Logger, producer Producer) *Publisher {
	return &Publisher{log: log, producer: producer}
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, ev domain.OrderPlaced) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	headers := []kafka.Header{{Key: "event_type", Value: []byte("OrderPlaced")}}
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	msg := kafka.Message{
		Key:     []byte(ev.OrderID),
		Value:   payload,
		Headers: headers,
	}
	if err := p.producer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("order event publish failed", "order_id", ev.OrderID, "err", err)
		return err
	}
	p.log.Info("order event published", "order_id", ev.OrderID, "type", "OrderPlaced")
	return nil
}
