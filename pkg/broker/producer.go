package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

type Producer struct {
	l                  *slog.Logger
	w                  *kafka.Writer
	invoiceEventsTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.Hash{},
		Async:                  true,
		Compression:            0,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:                  l,
		w:                  w,
		invoiceEventsTopic: topic,
	}
}

type InvoiceEventMessage struct {
	Type        string    `json:"type"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// SendInvoiceEvent never fails the caller, errors are only logged.
func (p *Producer) SendInvoiceEvent(ctx context.Context, e entity.InvoiceEvent) {
	msg, err := invoiceEventMessage(p.invoiceEventsTopic, e)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, msg)
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

func invoiceEventMessage(topic string, e entity.InvoiceEvent) (kafka.Message, error) {
	b, err := json.Marshal(InvoiceEventMessage{
		Type:        e.Type.String(),
		InvoiceID:   e.InvoiceID,
		CustomerID:  e.CustomerID,
		Status:      e.Status.String(),
		TotalAmount: e.TotalAmount.StringFixed(entity.UnitPriceDecimalPlaces),
		OccurredAt:  e.OccurredAt.UTC(),
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(e.InvoiceID.String()),
		Value: b,
		Topic: topic,
	}, nil
}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, v ...any) {
	l.l.Info(fmt.Sprintf(format, v...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
