package models

// DateLayout is the wire and storage format for transaction dates.
// ISO dates compare correctly as plain strings, which the range and
// month-grouping queries rely on.
const DateLayout = "2006-01-02"

type User struct {
	ID           int    `json:"id" example:"1"`
	Username     string `json:"username" example:"john_doe"`
	PasswordHash string `json:"-"`
}

type Transaction struct {
	ID          int     `json:"id" example:"1"`
	UserID      int     `json:"userId" example:"1"`
	Type        string  `json:"type" example:"expense"`
	Category    string  `json:"category" example:"food"`
	Amount      float64 `json:"amount" example:"12.50"`
	Date        string  `json:"date" example:"2024-01-15"`
	Description string  `json:"description" example:"lunch"`
}

// SummaryRow is one group of the per-type aggregate.
type SummaryRow struct {
	Type  string  `json:"type" example:"income"`
	Total float64 `json:"total" example:"1500.00"`
}

// MonthlyReportRow is one group of the month/category aggregate.
type MonthlyReportRow struct {
	Month    string  `json:"month" example:"2024-01"`
	Category string  `json:"category" example:"food"`
	Total    float64 `json:"total" example:"230.40"`
}
