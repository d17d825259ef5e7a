package domain

// Invoice is a supplier purchase invoice tracked for its due date.
type Invoice struct {
	ID        int64  `db:"id" json:"id"`
	IssueDate string `db:"issue_date" json:"issue_date"`
	DueDate   string `db:"due_date" json:"due_date"`
	Paid      bool   `db:"paid" json:"paid"`
}
