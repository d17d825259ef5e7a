package domain

// SaleEvent is one sold line item. Rows are written once and never mutated.
type SaleEvent struct {
	ID        int64   `db:"id" json:"id"`
	Item      string  `db:"item" json:"item"`
	SalePrice float64 `db:"sale_price" json:"sale_price"`
	Profit    float64 `db:"profit" json:"profit"`
	SoldOn    string  `db:"sold_on" json:"sold_on"`
	BatchRef  string  `db:"batch_ref" json:"batch_ref"`
}
