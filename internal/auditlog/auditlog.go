// Package auditlog keeps an append-only CSV trail of engine
// operations under <root>/logs/audit-log.csv.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp time.Time
	Operation string // deposit, withdraw, accrue, create-checking, ...
	UserID    int
	AccountID int
	Amount    string // decimal string, empty when not applicable
	Outcome   string // ok, or the rejection reason
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,operation,user_id,account_id,amount,outcome"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/audit-log.csv"
	colTimestamp = 0
	colOperation = 1
	colUserID    = 2
	colAccountID = 3
	colAmount    = 4
	colOutcome   = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colOperation] = e.Operation
	row[colUserID] = strconv.Itoa(e.UserID)
	row[colAccountID] = strconv.Itoa(e.AccountID)
	row[colAmount] = e.Amount
	row[colOutcome] = e.Outcome
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	userID, err := strconv.Atoi(record[colUserID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing user_id %q: %w", record[colUserID], err)
	}
	accountID, err := strconv.Atoi(record[colAccountID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing account_id %q: %w", record[colAccountID], err)
	}

	return Entry{
		Timestamp: ts,
		Operation: record[colOperation],
		UserID:    userID,
		AccountID: accountID,
		Amount:    record[colAmount],
		Outcome:   record[colOutcome],
	}, nil
}

// Append writes entries to <root>/logs/audit-log.csv, creating the
// file and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/audit-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
