// Package ledger persists purchase prices and sale events.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"janudairy/m/domain"
)

// Style selects how purchase rows are kept.
type Style string

const (
	// StyleHistory appends one row per purchase event; the highest id wins.
	StyleHistory Style = "history"
	// StyleLatest keeps one row per item, overwritten on each purchase.
	StyleLatest Style = "latest"
)

// ParseStyle validates a ledger style string from configuration.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleHistory, StyleLatest:
		return Style(s), nil
	}
	return "", fmt.Errorf("unknown ledger style %q", s)
}

// Store is the purchase price ledger. The mutex serializes the
// read-check-write sequence in RecordPurchase so two concurrent uploads of
// the same item cannot interleave.
type Store struct {
	db    *sqlx.DB
	style Style
	mu    sync.Mutex
}

// NewStore constructs a Store over an open database.
func NewStore(db *sqlx.DB, style Style) *Store {
	return &Store{db: db, style: style}
}

// RecordPurchase writes a purchase price for an item. When the item already
// has a recorded price that differs exactly from the new one, the previous
// price is returned as a change signal; the new record is written either way.
func (s *Store) RecordPurchase(ctx context.Context, item string, price, gstPercent, discountPercent float64) (*float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prev float64
	err := s.db.GetContext(ctx, &prev,
		`SELECT base_price FROM purchases WHERE item = ? ORDER BY id DESC LIMIT 1`, item)

	var old *float64
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First purchase of this item.
	case err != nil:
		return nil, fmt.Errorf("look up previous price for %q: %w", item, err)
	case prev != price:
		old = &prev
	}

	if s.style == StyleLatest {
		res, err := s.db.ExecContext(ctx,
			`UPDATE purchases SET base_price = ?, gst = ?, discount = ?, created_at = CURRENT_TIMESTAMP WHERE item = ?`,
			price, gstPercent, discountPercent, item)
		if err != nil {
			return nil, fmt.Errorf("overwrite price for %q: %w", item, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			return old, nil
		}
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO purchases (item, base_price, gst, discount) VALUES (?, ?, ?, ?)`,
		item, price, gstPercent, discountPercent); err != nil {
		return nil, fmt.Errorf("record purchase of %q: %w", item, err)
	}
	return old, nil
}

// CurrentPrice returns the current purchase-side price for an item. An item
// that has never been purchased yields the zero ItemPrice, not an error.
func (s *Store) CurrentPrice(ctx context.Context, item string) (domain.ItemPrice, error) {
	var p domain.ItemPrice
	err := s.db.GetContext(ctx, &p,
		`SELECT base_price, gst, discount FROM purchases WHERE item = ? ORDER BY id DESC LIMIT 1`, item)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ItemPrice{}, nil
	}
	if err != nil {
		return domain.ItemPrice{}, fmt.Errorf("look up current price for %q: %w", item, err)
	}
	return p, nil
}

// History returns every recorded purchase of an item, oldest first.
func (s *Store) History(ctx context.Context, item string) ([]domain.PriceRecord, error) {
	var records []domain.PriceRecord
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, item, base_price, gst, discount, created_at FROM purchases WHERE item = ? ORDER BY id ASC`, item)
	if err != nil {
		return nil, fmt.Errorf("load price history for %q: %w", item, err)
	}
	return records, nil
}
