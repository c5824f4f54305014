package auditlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Operation: "withdraw",
		UserID:    1,
		AccountID: 42,
		Amount:    "-100.00",
		Outcome:   "ok",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "withdraw", entries[0].Operation)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Operation = "deposit"
	e2.Amount = "250.00"
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "withdraw", entries[0].Operation)
	assert.Equal(t, "deposit", entries[1].Operation)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	original.Outcome = "forbidden: this transaction may be fraudulent"
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.Operation, got.Operation)
	assert.Equal(t, original.UserID, got.UserID)
	assert.Equal(t, original.AccountID, got.AccountID)
	assert.Equal(t, original.Amount, got.Amount)
	assert.Equal(t, original.Outcome, got.Outcome)
}

func TestRead_NotFound(t *testing.T) {
	dir := t.TempDir()
	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "audit-log.csv"), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 6 fields")
}

func TestAppend_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
