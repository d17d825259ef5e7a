package domain

// Payment is a customer receivable created once per sale batch.
type Payment struct {
	ID        int64   `db:"id" json:"id"`
	Customer  string  `db:"customer" json:"customer"`
	Amount    float64 `db:"amount" json:"amount"`
	Channel   string  `db:"channel" json:"channel,omitempty"`
	Status    string  `db:"status" json:"status"`
	BatchRef  string  `db:"batch_ref" json:"batch_ref"`
	CreatedAt string  `db:"created_at" json:"created_at"`
}

// PendingReminder is a pending receivable as seen by the reminder dispatcher.
type PendingReminder struct {
	Customer string  `db:"customer" json:"customer"`
	Amount   float64 `db:"amount" json:"amount"`
	Channel  string  `db:"channel" json:"channel"`
}

// DeliveryResult reports the outcome of one reminder delivery attempt.
type DeliveryResult struct {
	Customer string  `json:"customer"`
	Amount   float64 `json:"amount"`
	Channel  string  `json:"channel,omitempty"`
	Status   string  `json:"status"`
	Error    string  `json:"error,omitempty"`
}
