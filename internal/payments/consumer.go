// Package payments processes terminal payment-intent events from the
// payment processor and advances the affected reservations.
package payments

import (
	"context"
	"net/http"

	"campreserv/pkg/client"
	"campreserv/pkg/kafka"
	"campreserv/pkg/logger"
	"campreserv/pkg/model"
)

// EventProcessor is the message handler behind the payment-events consumer.
// Completed payments confirm the pending reservation; abandoned payments
// cancel it best-effort, recording the cancellation failure on the
// dead-letter topic when the backend refuses.
type EventProcessor struct {
	reservations *client.ReservationClient
	producer     *kafka.Producer
	log          *logger.Logger
}

func NewEventProcessor(reservations *client.ReservationClient, producer *kafka.Producer, log *logger.Logger) *EventProcessor {
	return &EventProcessor{
		reservations: reservations,
		producer:     producer,
		log:          log,
	}
}

// Handle implements kafka.MessageHandler.
func (p *EventProcessor) Handle(ctx context.Context, msg kafka.Message) error {
	var event model.PaymentEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("payment event payload is not decodable", err)
	}
	if event.ReservationID == "" {
		return kafka.NewPermanentError("payment event has no reservation id", nil)
	}

	switch msg.GetEventType() {
	case kafka.EventPaymentCompleted:
		return p.handleCompleted(msg, event)
	case kafka.EventPaymentAbandoned:
		return p.handleAbandoned(ctx, msg, event)
	default:
		p.log.Debug("Skipping unhandled payment event",
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
		)
		return nil
	}
}

func (p *EventProcessor) handleCompleted(msg kafka.Message, event model.PaymentEvent) error {
	update := &model.ReservationStatusUpdate{Status: model.ReservationStatusConfirmed}
	resp, err := p.reservations.UpdateStatus(event.ReservationID, update, headersFrom(msg))
	if err != nil {
		return kafka.NewTransientError("reservations service unreachable", err)
	}
	if !resp.OK() {
		return classifyStatus(resp, "failed to confirm reservation")
	}

	p.log.Info("Reservation confirmed by payment",
		"reservation_id", event.ReservationID,
		"intent_id", event.IntentID,
		"amount_cents", event.AmountCents,
	)
	return nil
}

// handleAbandoned cancels the reservation the intent was opened for. The
// cancellation is best-effort: a backend refusal is recorded on the
// dead-letter topic for manual follow-up instead of being retried forever.
func (p *EventProcessor) handleAbandoned(ctx context.Context, msg kafka.Message, event model.PaymentEvent) error {
	resp, err := p.reservations.Cancel(event.ReservationID, headersFrom(msg))
	if err == nil && resp.OK() {
		p.log.Info("Reservation cancelled after abandoned payment",
			"reservation_id", event.ReservationID,
			"intent_id", event.IntentID,
		)
		return nil
	}
	if err != nil {
		return kafka.NewTransientError("reservations service unreachable", err)
	}

	dlq := kafka.NewMessage().
		WithKey(event.ReservationID).
		WithValue(event).
		WithEventType(kafka.EventCancellationFailed).
		WithCorrelationID(msg.GetCorrelationID()).
		WithSchemaVersion("1").
		WithSource("frontdesk").
		WithHeader("cancel-error", client.GetErrorMessage(resp)).
		Build()
	if publishErr := p.producer.Publish(ctx, dlq); publishErr != nil {
		return kafka.NewTransientError("failed to record cancellation failure", publishErr)
	}

	p.log.Warn("Reservation cancellation refused, recorded for follow-up",
		"reservation_id", event.ReservationID,
		"intent_id", event.IntentID,
		"error", client.GetErrorMessage(resp),
	)
	return nil
}

func headersFrom(msg kafka.Message) map[string]string {
	if correlationID := msg.GetCorrelationID(); correlationID != "" {
		return map[string]string{client.RequestIDHeader: correlationID}
	}
	return nil
}

func classifyStatus(resp *client.Response, message string) error {
	if resp.StatusCode >= http.StatusInternalServerError {
		return kafka.NewTransientError(message+": "+client.GetErrorMessage(resp), nil)
	}
	return kafka.NewPermanentError(message+": "+client.GetErrorMessage(resp), nil)
}
