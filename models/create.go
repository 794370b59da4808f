package models

import (
	"time"

	"finance-tracker/apperrors"
)

type Credentials struct {
	Username string `json:"username" example:"john_doe"`
	Password string `json:"password" example:"password123"`
}

// Validate checks presence only; anything non-empty is a legal
// username/password pair as far as this service is concerned.
func (c Credentials) Validate() error {
	if c.Username == "" || c.Password == "" {
		return apperrors.Validation("Username and password are required!")
	}
	return nil
}

type CreateTransactionRequest struct {
	Type        string  `json:"type" example:"expense"`
	Category    string  `json:"category" example:"food"`
	Amount      float64 `json:"amount" example:"12.50"`
	Date        string  `json:"date" example:"2024-01-15"`
	Description string  `json:"description" example:"lunch"`
}

// Validate enforces the creation rules: type from the two-value enum,
// non-empty category, strictly positive amount, parseable date. The
// first violation wins. Update requests deliberately skip this check.
func (r CreateTransactionRequest) Validate() error {
	if r.Type != "income" && r.Type != "expense" {
		return apperrors.Validation("Invalid transaction type")
	}
	if r.Category == "" {
		return apperrors.Validation("Category is required and must be a string")
	}
	if r.Amount <= 0 {
		return apperrors.Validation("Amount must be a positive number")
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return apperrors.Validation("Valid date is required")
	}
	return nil
}

// SummaryFilter narrows the per-type aggregate. Zero values mean the
// filter is absent. Both date bounds are inclusive.
type SummaryFilter struct {
	StartDate string
	EndDate   string
	ID        int
}
