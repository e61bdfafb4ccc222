package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ticketboss/ticketboss/internal/domain"
	"go.uber.org/zap"
)

// Publisher emits reservation events to a durable queue. Publishing is
// best-effort: the broker observes reservations, it never participates in
// their transactions, so a failed publish is logged and dropped.
type Publisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *zap.Logger
}

func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, logger: logger}, nil
}

func (p *Publisher) Close() {
	_ = p.ch.Close()
	_ = p.conn.Close()
}

func (p *Publisher) ReservationConfirmed(ctx context.Context, res domain.Reservation) {
	p.publish(ctx, TypeReservationConfirmed, res)
}

func (p *Publisher) ReservationCancelled(ctx context.Context, res domain.Reservation) {
	p.publish(ctx, TypeReservationCancelled, res)
}

func (p *Publisher) publish(ctx context.Context, eventType string, res domain.Reservation) {
	body, err := json.Marshal(ReservationEvent{
		Type:          eventType,
		ReservationID: res.ID,
		EventID:       res.EventID,
		PartnerID:     res.PartnerID,
		Seats:         res.SeatCount,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		p.logger.Warn("marshal reservation event failed", zap.String("type", eventType), zap.Error(err))
		return
	}

	err = p.ch.PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.logger.Warn("publish reservation event failed",
			zap.String("type", eventType),
			zap.String("reservation_id", res.ID),
			zap.Error(err),
		)
	}
}
