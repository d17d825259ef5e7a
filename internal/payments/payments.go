// Package payments tracks customer receivables created from sale uploads.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"janudairy/m/domain"
)

// Statuses a payment can be in. Transitions are one-way: pending to paid.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// ErrNotFound is returned when a payment id does not exist.
var ErrNotFound = errors.New("payment not found")

// Store persists payment records.
type Store struct {
	db *sqlx.DB
}

// NewStore constructs a Store over an open database.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// CreatePending records a new receivable and returns its id. An empty
// customer name is stored as "Unknown". Amount is the sum of the batch's sale
// prices, not its profit.
func (s *Store) CreatePending(ctx context.Context, customer string, amount float64, channel, batchRef string) (int64, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		customer = "Unknown"
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (customer, amount, channel, status, batch_ref) VALUES (?, ?, ?, ?, ?)`,
		customer, amount, channel, StatusPending, batchRef)
	if err != nil {
		return 0, fmt.Errorf("create payment for %q: %w", customer, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read payment id: %w", err)
	}
	return id, nil
}

// MarkPaid transitions a payment to paid. Marking an already-paid payment is
// a no-op; an unknown id returns ErrNotFound.
func (s *Store) MarkPaid(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE payments SET status = ? WHERE id = ?`, StatusPaid, id)
	if err != nil {
		return fmt.Errorf("mark payment %d paid: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark payment %d paid: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByStatus returns payments in the given status, oldest first.
func (s *Store) ListByStatus(ctx context.Context, status string) ([]domain.Payment, error) {
	var out []domain.Payment
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, customer, amount, COALESCE(channel, '') AS channel, status, COALESCE(batch_ref, '') AS batch_ref, created_at
         FROM payments WHERE status = ? ORDER BY id ASC`, status)
	if err != nil {
		return nil, fmt.Errorf("list %s payments: %w", status, err)
	}
	return out, nil
}

// ListPendingWithChannel returns every pending receivable for the reminder
// dispatcher, including ones without a channel so the caller can report them
// as undeliverable.
func (s *Store) ListPendingWithChannel(ctx context.Context) ([]domain.PendingReminder, error) {
	var out []domain.PendingReminder
	err := s.db.SelectContext(ctx, &out,
		`SELECT customer, amount, COALESCE(channel, '') AS channel FROM payments WHERE status = ? ORDER BY id ASC`,
		StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	return out, nil
}
