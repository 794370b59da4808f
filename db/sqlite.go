package db

import (
	"database/sql"
	"fmt"

	"finance-tracker/models"

	_ "modernc.org/sqlite"
)

// SQLiteStorage serves local development and the test suite on the
// embedded engine. The contract is identical to PostgresStorage.
type SQLiteStorage struct {
	DB *sql.DB
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		category TEXT NOT NULL,
		amount REAL NOT NULL,
		date TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
}

// NewSQLiteStorage opens (or creates) the database file and bootstraps
// the schema. Use ":memory:" for a throwaway database.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, err
	}

	for _, stmt := range sqliteSchema {
		if _, err := conn.Exec(stmt); err != nil {
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return &SQLiteStorage{DB: conn}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.DB.Close()
}

func (s *SQLiteStorage) CreateUser(username, passwordHash string) (int, error) {
	result, err := s.DB.Exec(
		"INSERT INTO users (username, password) VALUES (?, ?)",
		username, passwordHash,
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	return int(id), err
}

func (s *SQLiteStorage) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRow(
		"SELECT id, username, password FROM users WHERE username = ?",
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

func (s *SQLiteStorage) CreateTransaction(t *models.Transaction) error {
	result, err := s.DB.Exec(
		`INSERT INTO transactions (user_id, type, category, amount, date, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Type, t.Category, t.Amount, t.Date, t.Description,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = int(id)
	return nil
}

func (s *SQLiteStorage) GetTransactions(userID, limit, offset int) ([]models.Transaction, error) {
	rows, err := s.DB.Query(
		`SELECT id, user_id, type, category, amount, date, description
		 FROM transactions WHERE user_id = ? LIMIT ? OFFSET ?`,
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

func (s *SQLiteStorage) GetTransactionByID(userID, id int) (*models.Transaction, error) {
	var t models.Transaction
	err := s.DB.QueryRow(
		`SELECT id, user_id, type, category, amount, date, description
		 FROM transactions WHERE id = ? AND user_id = ?`,
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

func (s *SQLiteStorage) UpdateTransaction(userID int, t *models.Transaction) error {
	result, err := s.DB.Exec(
		`UPDATE transactions SET type = ?, category = ?, amount = ?, date = ?, description = ?
		 WHERE id = ? AND user_id = ?`,
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

func (s *SQLiteStorage) DeleteTransaction(userID, id int) error {
	result, err := s.DB.Exec(
		"DELETE FROM transactions WHERE id = ? AND user_id = ?",
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

func (s *SQLiteStorage) Summary(userID int, f models.SummaryFilter) ([]models.SummaryRow, error) {
	query := "SELECT type, SUM(amount) AS total FROM transactions WHERE user_id = ?"
	args := []any{userID}

	if f.ID != 0 {
		query += " AND id = ?"
		args = append(args, f.ID)
	}
	if f.StartDate != "" {
		query += " AND date >= ?"
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		query += " AND date <= ?"
		args = append(args, f.EndDate)
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

func (s *SQLiteStorage) MonthlyReport(userID int) ([]models.MonthlyReportRow, error) {
	rows, err := s.DB.Query(
		`SELECT substr(date, 1, 7) AS month, category, SUM(amount) AS total
		 FROM transactions
		 WHERE user_id = ?
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
