package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Logger интерфейс логгера для публикатора событий
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует доменные события в Kafka
type Publisher struct {
	writer *kafka.Writer
	logger Logger
}

// NewPublisher создает публикатор событий
// Ключ сообщения содержит ID бронирования, поэтому события одного
// бронирования попадают в одну партицию и сохраняют порядок
func NewPublisher(brokers []string, topic string, logger Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
		Logger:       kafka.LoggerFunc(func(msg string, args ...interface{}) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error("kafka: "+msg, args...)
		}),
	}

	return &Publisher{writer: writer, logger: logger}
}

// PublishBookingConfirmed публикует событие подтверждения бронирования
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: booking=%s: %v", ErrMarshal, event.BookingID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.BookingID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("booking.confirmed")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: booking=%s: %v", ErrPublish, event.BookingID, err)
	}

	p.logger.Info("PublishBookingConfirmed: published event for booking=%s", event.BookingID)
	return nil
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() error {
	return p.writer.Close()
}
