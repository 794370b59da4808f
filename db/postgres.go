package db

import (
	"database/sql"
	"fmt"

	"finance-tracker/models"

	_ "github.com/lib/pq"
)

// PostgresStorage is the production Store, backed by lib/pq.
type PostgresStorage struct {
	DB *sql.DB
}

var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		category TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		date TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
}

// NewPostgresStorage opens the connection and bootstraps the schema.
func NewPostgresStorage(connStr string) (*PostgresStorage, error) {
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, err
	}

	for _, stmt := range pgSchema {
		if _, err := conn.Exec(stmt); err != nil {
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return &PostgresStorage{DB: conn}, nil
}

func (s *PostgresStorage) Close() error {
	return s.DB.Close()
}

func (s *PostgresStorage) CreateUser(username, passwordHash string) (int, error) {
	var id int
	err := s.DB.QueryRow(
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		username, passwordHash,
	).Scan(&id)
	return id, err
}

func (s *PostgresStorage) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRow(
		"SELECT id, username, password FROM users WHERE username = $1",
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStorage) CreateTransaction(t *models.Transaction) error {
	return s.DB.QueryRow(
		`INSERT INTO transactions (user_id, type, category, amount, date, description)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		t.UserID, t.Type, t.Category, t.Amount, t.Date, t.Description,
	).Scan(&t.ID)
}

func (s *PostgresStorage) GetTransactions(userID, limit, offset int) ([]models.Transaction, error) {
	rows, err := s.DB.Query(
		`SELECT id, user_id, type, category, amount, date, description
		 FROM transactions WHERE user_id = $1 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Amount, &t.Date, &t.Description); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *PostgresStorage) GetTransactionByID(userID, id int) (*models.Transaction, error) {
	var t models.Transaction
	err := s.DB.QueryRow(
		`SELECT id, user_id, type, category, amount, date, description
		 FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Amount, &t.Date, &t.Description)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStorage) UpdateTransaction(userID int, t *models.Transaction) error {
	result, err := s.DB.Exec(
		`UPDATE transactions SET type = $1, category = $2, amount = $3, date = $4, description = $5
		 WHERE id = $6 AND user_id = $7`,
		t.Type, t.Category, t.Amount, t.Date, t.Description, t.ID, userID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) DeleteTransaction(userID, id int) error {
	result, err := s.DB.Exec(
		"DELETE FROM transactions WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) Summary(userID int, f models.SummaryFilter) ([]models.SummaryRow, error) {
	query := "SELECT type, SUM(amount) AS total FROM transactions WHERE user_id = $1"
	args := []any{userID}

	if f.ID != 0 {
		args = append(args, f.ID)
		query += fmt.Sprintf(" AND id = $%d", len(args))
	}
	if f.StartDate != "" {
		args = append(args, f.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.EndDate != "" {
		args = append(args, f.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " GROUP BY type"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := []models.SummaryRow{}
	for rows.Next() {
		var r models.SummaryRow
		if err := rows.Scan(&r.Type, &r.Total); err != nil {
			return nil, err
		}
		summary = append(summary, r)
	}
	return summary, rows.Err()
}

func (s *PostgresStorage) MonthlyReport(userID int) ([]models.MonthlyReportRow, error) {
	rows, err := s.DB.Query(
		`SELECT substr(date, 1, 7) AS month, category, SUM(amount) AS total
		 FROM transactions
		 WHERE user_id = $1
		 GROUP BY month, category
		 ORDER BY month DESC, category ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := []models.MonthlyReportRow{}
	for rows.Next() {
		var r models.MonthlyReportRow
		if err := rows.Scan(&r.Month, &r.Category, &r.Total); err != nil {
			return nil, err
		}
		report = append(report, r)
	}
	return report, rows.Err()
}
