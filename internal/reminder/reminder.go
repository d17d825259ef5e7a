// Package reminder delivers payment reminders to pending customers.
package reminder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"janudairy/m/domain"
)

// Delivery statuses reported per entry.
const (
	StatusSent      = "sent"
	StatusFailed    = "failed"
	StatusNoChannel = "no_channel"
)

// Sender delivers one message to one recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// Source lists the pending receivables to remind. *payments.Store satisfies
// this.
type Source interface {
	ListPendingWithChannel(ctx context.Context) ([]domain.PendingReminder, error)
}

// Dispatcher walks pending receivables and attempts one delivery per entry.
type Dispatcher struct {
	source Source
	sender Sender
	logger *zap.Logger
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(source Source, sender Sender, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{source: source, sender: sender, logger: logger}
}

// Dispatch attempts delivery for every pending receivable and returns one
// result per entry. Entries without a channel are reported as undeliverable
// without an attempt, and a failed delivery never stops the remaining
// entries.
func (d *Dispatcher) Dispatch(ctx context.Context) ([]domain.DeliveryResult, error) {
	entries, err := d.source.ListPendingWithChannel(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}

	results := make([]domain.DeliveryResult, 0, len(entries))
	for _, e := range entries {
		result := domain.DeliveryResult{Customer: e.Customer, Amount: e.Amount, Channel: e.Channel}

		if e.Channel == "" {
			result.Status = StatusNoChannel
			results = append(results, result)
			continue
		}

		subject := "Payment reminder"
		body := fmt.Sprintf("Dear %s,\r\n\r\nA payment of %.2f is pending. Kindly settle it at your convenience.\r\n", e.Customer, e.Amount)
		if err := d.sender.Send(e.Channel, subject, body); err != nil {
			d.logger.Warn("reminder delivery failed",
				zap.String("customer", e.Customer),
				zap.String("channel", e.Channel),
				zap.Error(err))
			result.Status = StatusFailed
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		d.logger.Info("reminder delivered",
			zap.String("customer", e.Customer),
			zap.Float64("amount", e.Amount))
		result.Status = StatusSent
		results = append(results, result)
	}
	return results, nil
}
