package ledger

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"janudairy/m/domain"
)

// SaleLog records sold line items. Rows are written once per extracted line
// and never mutated.
type SaleLog struct {
	db *sqlx.DB
}

// NewSaleLog constructs a SaleLog over an open database.
func NewSaleLog(db *sqlx.DB) *SaleLog {
	return &SaleLog{db: db}
}

// Record stores one sale event and returns its id. Profit is stored
// unrounded; rounding is a presentation concern.
func (l *SaleLog) Record(ctx context.Context, item string, salePrice, profit float64, batchRef string) (int64, error) {
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO sales (item, sale_price, profit, batch_ref) VALUES (?, ?, ?, ?)`,
		item, salePrice, profit, batchRef)
	if err != nil {
		return 0, fmt.Errorf("record sale of %q: %w", item, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read sale id: %w", err)
	}
	return id, nil
}

// ByBatch returns the sale events recorded under one upload batch.
func (l *SaleLog) ByBatch(ctx context.Context, batchRef string) ([]domain.SaleEvent, error) {
	var events []domain.SaleEvent
	err := l.db.SelectContext(ctx, &events,
		`SELECT id, item, sale_price, profit, sold_on, batch_ref FROM sales WHERE batch_ref = ? ORDER BY id ASC`, batchRef)
	if err != nil {
		return nil, fmt.Errorf("load sales for batch %s: %w", batchRef, err)
	}
	return events, nil
}
