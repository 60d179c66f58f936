// Package messaging publica en Kafka los eventos de stock bajo.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/notification"
	"github.com/LuizZonetti1/cafeterias-api/pkg/config"
)

var _ notification.Publisher = (*LowStockPublisher)(nil)

// Event types en la cabecera "event-type".
const EventLowStock = "stock.low"

// MessageProducer escritor de mensajes Kafka. Lo implementa *otelkafka.Writer.
type MessageProducer interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// NewProducer crea el writer instrumentado: inyecta el contexto de traza en las cabeceras.
func NewProducer(cfg config.KafkaConfig, serviceName string, tp trace.TracerProvider) (MessageProducer, error) {
	base := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.NotificationTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	w, err := otelkafka.NewWriter(base,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes([]attribute.KeyValue{
			semconv.MessagingDestinationNameKey.String(cfg.NotificationTopic),
			attribute.String("messaging.kafka.client_id", serviceName),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka writer: %w", err)
	}
	return w, nil
}

// LowStockPublisher implementa notification.Publisher: un mensaje por notificación nueva,
// con el ingrediente como clave para conservar el orden por ingrediente.
type LowStockPublisher struct {
	producer MessageProducer
}

// NewLowStockPublisher construye el publicador.
func NewLowStockPublisher(producer MessageProducer) *LowStockPublisher {
	return &LowStockPublisher{producer: producer}
}

// PublishLowStock serializa el evento y lo escribe en el tópico.
func (p *LowStockPublisher) PublishLowStock(ctx context.Context, ev notification.LowStockEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode low stock event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.IngredientID),
		Value: payload,
		Time:  ev.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(EventLowStock)},
			{Key: "restaurant-id", Value: []byte(ev.RestaurantID)},
		},
	}
	if err := p.producer.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("publish low stock: %w", err)
	}
	return nil
}

// Close cierra el writer subyacente.
func (p *LowStockPublisher) Close() error {
	return p.producer.Close()
}
