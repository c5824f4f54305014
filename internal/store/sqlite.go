package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank-dev/corebank/internal/model"
	"github.com/corebank-dev/corebank/internal/money"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// SQLite is a durable Store backed by a single SQLite database file.
// Decimal amounts are stored as TEXT to keep them exact.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging store: %w", err)
	}

	s := &SQLite{conn: conn}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrating store: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

func (s *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS holders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			birth_date TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			balance TEXT NOT NULL,
			primary_owner_id INTEGER NOT NULL,
			secondary_owner_id INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			secret_key_hash TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			last_modified TEXT NOT NULL,
			minimum_balance TEXT NOT NULL DEFAULT '0',
			penalty_fee TEXT NOT NULL DEFAULT '0',
			interest_rate TEXT NOT NULL DEFAULT '0',
			credit_limit TEXT NOT NULL DEFAULT '0'
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			user_id INTEGER NOT NULL,
			account_id INTEGER NOT NULL,
			amount TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp)`,
	}

	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

const timeFormat = time.RFC3339Nano

// GetAccount returns the account, or nil if absent.
func (s *SQLite) GetAccount(id int) (*model.Account, error) {
	row := s.conn.QueryRow(`SELECT id, type, balance, primary_owner_id, secondary_owner_id,
		status, secret_key_hash, created_at, last_modified,
		minimum_balance, penalty_fee, interest_rate, credit_limit
		FROM accounts WHERE id = ?`, id)

	var a model.Account
	var typ, balance, status, createdAt, lastModified string
	var minBalance, penaltyFee, interestRate, creditLimit string
	err := row.Scan(&a.ID, &typ, &balance, &a.PrimaryOwnerID, &a.SecondaryOwnerID,
		&status, &a.SecretKeyHash, &createdAt, &lastModified,
		&minBalance, &penaltyFee, &interestRate, &creditLimit)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading account %d: %w", id, err)
	}

	a.Type = model.AccountType(typ)
	a.Status = model.Status(status)
	if a.Balance, err = moneyFromDB(balance); err != nil {
		return nil, fmt.Errorf("account %d balance: %w", id, err)
	}
	if a.MinimumBalance, err = moneyFromDB(minBalance); err != nil {
		return nil, fmt.Errorf("account %d minimum balance: %w", id, err)
	}
	if a.PenaltyFee, err = moneyFromDB(penaltyFee); err != nil {
		return nil, fmt.Errorf("account %d penalty fee: %w", id, err)
	}
	if a.CreditLimit, err = moneyFromDB(creditLimit); err != nil {
		return nil, fmt.Errorf("account %d credit limit: %w", id, err)
	}
	if a.InterestRate, err = decimal.NewFromString(interestRate); err != nil {
		return nil, fmt.Errorf("account %d interest rate: %w", id, err)
	}
	if a.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return nil, fmt.Errorf("account %d created_at: %w", id, err)
	}
	if a.LastModified, err = time.Parse(timeFormat, lastModified); err != nil {
		return nil, fmt.Errorf("account %d last_modified: %w", id, err)
	}
	return &a, nil
}

// SaveAccount upserts the account, assigning an id on first insert.
func (s *SQLite) SaveAccount(a *model.Account) error {
	if a.ID == 0 {
		res, err := s.conn.Exec(`INSERT INTO accounts
			(type, balance, primary_owner_id, secondary_owner_id, status, secret_key_hash,
			 created_at, last_modified, minimum_balance, penalty_fee, interest_rate, credit_limit)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(a.Type), a.Balance.Amount().String(), a.PrimaryOwnerID, a.SecondaryOwnerID,
			string(a.Status), a.SecretKeyHash,
			a.CreatedAt.Format(timeFormat), a.LastModified.Format(timeFormat),
			a.MinimumBalance.Amount().String(), a.PenaltyFee.Amount().String(),
			a.InterestRate.String(), a.CreditLimit.Amount().String())
		if err != nil {
			return fmt.Errorf("inserting account: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading account id: %w", err)
		}
		a.ID = int(id)
		return nil
	}

	_, err := s.conn.Exec(`UPDATE accounts SET
		type = ?, balance = ?, primary_owner_id = ?, secondary_owner_id = ?, status = ?,
		secret_key_hash = ?, created_at = ?, last_modified = ?,
		minimum_balance = ?, penalty_fee = ?, interest_rate = ?, credit_limit = ?
		WHERE id = ?`,
		string(a.Type), a.Balance.Amount().String(), a.PrimaryOwnerID, a.SecondaryOwnerID,
		string(a.Status), a.SecretKeyHash,
		a.CreatedAt.Format(timeFormat), a.LastModified.Format(timeFormat),
		a.MinimumBalance.Amount().String(), a.PenaltyFee.Amount().String(),
		a.InterestRate.String(), a.CreditLimit.Amount().String(), a.ID)
	if err != nil {
		return fmt.Errorf("updating account %d: %w", a.ID, err)
	}
	return nil
}

// GetHolder returns the account holder, or nil if absent.
func (s *SQLite) GetHolder(id int) (*model.AccountHolder, error) {
	row := s.conn.QueryRow(`SELECT id, name, birth_date FROM holders WHERE id = ?`, id)

	var h model.AccountHolder
	var birthDate string
	err := row.Scan(&h.ID, &h.Name, &birthDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading holder %d: %w", id, err)
	}
	if h.BirthDate, err = time.Parse(timeFormat, birthDate); err != nil {
		return nil, fmt.Errorf("holder %d birth_date: %w", id, err)
	}
	return &h, nil
}

// SaveHolder upserts the holder, assigning an id on first insert.
func (s *SQLite) SaveHolder(h *model.AccountHolder) error {
	if h.ID == 0 {
		res, err := s.conn.Exec(`INSERT INTO holders (name, birth_date) VALUES (?, ?)`,
			h.Name, h.BirthDate.Format(timeFormat))
		if err != nil {
			return fmt.Errorf("inserting holder: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading holder id: %w", err)
		}
		h.ID = int(id)
		return nil
	}

	_, err := s.conn.Exec(`UPDATE holders SET name = ?, birth_date = ? WHERE id = ?`,
		h.Name, h.BirthDate.Format(timeFormat), h.ID)
	if err != nil {
		return fmt.Errorf("updating holder %d: %w", h.ID, err)
	}
	return nil
}

// Append records a transaction in the ledger.
func (s *SQLite) Append(tx model.Transaction) error {
	_, err := s.conn.Exec(`INSERT INTO transactions (id, user_id, account_id, amount, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.AccountID, tx.Amount.String(), tx.Timestamp)
	if err != nil {
		return fmt.Errorf("appending transaction: %w", err)
	}
	return nil
}

// ListByAccount returns the account's transactions in insertion order.
func (s *SQLite) ListByAccount(accountID int) ([]model.Transaction, error) {
	rows, err := s.conn.Query(`SELECT id, user_id, account_id, amount, timestamp
		FROM transactions WHERE account_id = ? ORDER BY seq`, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListByDateRange returns transactions with startMs <= timestamp <= endMs.
func (s *SQLite) ListByDateRange(startMs, endMs int64) ([]model.Transaction, error) {
	rows, err := s.conn.Query(`SELECT id, user_id, account_id, amount, timestamp
		FROM transactions WHERE timestamp >= ? AND timestamp <= ? ORDER BY seq`, startMs, endMs)
	if err != nil {
		return nil, fmt.Errorf("listing transactions by date: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var out []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var amount string
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &amount, &tx.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %s amount: %w", tx.ID, err)
		}
		tx.Amount = d
		out = append(out, tx)
	}
	return out, rows.Err()
}

func moneyFromDB(s string) (money.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(d), nil
}
