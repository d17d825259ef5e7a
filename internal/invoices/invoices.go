// Package invoices tracks supplier purchase invoices and their due dates.
package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"janudairy/m/domain"
)

const dateLayout = "2006-01-02"

// Payment terms: invoices fall due one week after issue.
const dueAfter = 7 * 24 * time.Hour

// ErrNotFound is returned when an invoice id does not exist.
var ErrNotFound = errors.New("invoice not found")

// Store persists purchase invoices.
type Store struct {
	db *sqlx.DB
}

// NewStore constructs a Store over an open database.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Create records an invoice issued on the given date, due seven days later.
func (s *Store) Create(ctx context.Context, issue time.Time) (domain.Invoice, error) {
	inv := domain.Invoice{
		IssueDate: issue.Format(dateLayout),
		DueDate:   issue.Add(dueAfter).Format(dateLayout),
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO invoices (issue_date, due_date, paid) VALUES (?, ?, 0)`,
		inv.IssueDate, inv.DueDate)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}
	inv.ID, err = res.LastInsertId()
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("read invoice id: %w", err)
	}
	return inv, nil
}

// MarkPaid flags an invoice as settled. Marking a paid invoice again is a
// no-op; an unknown id returns ErrNotFound.
func (s *Store) MarkPaid(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE invoices SET paid = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark invoice %d paid: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark invoice %d paid: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOverdue returns unpaid invoices whose due date is before asOf.
func (s *Store) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Invoice, error) {
	var out []domain.Invoice
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, issue_date, due_date, paid FROM invoices WHERE paid = 0 AND due_date < ? ORDER BY due_date ASC`,
		asOf.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list overdue invoices: %w", err)
	}
	return out, nil
}
