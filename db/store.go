package db

import (
	"errors"

	"finance-tracker/models"
)

// ErrNotFound is returned when no row matches the caller's scope. A row
// owned by a different user is reported with this same error, so callers
// cannot tell absence from foreign ownership.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract. Every method maps to a single
// parameterized statement; there are no multi-statement transactions.
type Store interface {
	CreateUser(username, passwordHash string) (int, error)
	// GetUserByUsername returns (nil, nil) when the user does not exist.
	GetUserByUsername(username string) (*models.User, error)

	// CreateTransaction fills in t.ID on success.
	CreateTransaction(t *models.Transaction) error
	GetTransactions(userID, limit, offset int) ([]models.Transaction, error)
	GetTransactionByID(userID, id int) (*models.Transaction, error)
	UpdateTransaction(userID int, t *models.Transaction) error
	DeleteTransaction(userID, id int) error

	Summary(userID int, f models.SummaryFilter) ([]models.SummaryRow, error)
	MonthlyReport(userID int) ([]models.MonthlyReportRow, error)

	Close() error
}
