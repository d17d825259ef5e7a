package domain

// PriceRecord is one row of the purchase price ledger.
type PriceRecord struct {
	ID              int64   `db:"id" json:"id"`
	Item            string  `db:"item" json:"item"`
	BasePrice       float64 `db:"base_price" json:"base_price"`
	GSTPercent      float64 `db:"gst" json:"gst_percent"`
	DiscountPercent float64 `db:"discount" json:"discount_percent"`
	CreatedAt       string  `db:"created_at" json:"created_at"`
}

// ItemPrice is the current purchase-side price for an item. The zero value
// stands in for an item that has never been purchased.
type ItemPrice struct {
	BasePrice       float64 `db:"base_price" json:"base_price"`
	GSTPercent      float64 `db:"gst" json:"gst_percent"`
	DiscountPercent float64 `db:"discount" json:"discount_percent"`
}

// PriceChange signals that a purchase arrived at a different price than the
// previous purchase of the same item.
type PriceChange struct {
	Item     string  `json:"item"`
	OldPrice float64 `json:"old_price"`
	NewPrice float64 `json:"new_price"`
}
