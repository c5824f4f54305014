// Package fraud screens candidate transactions against the ledger
// using two heuristics: a velocity check (rapid-fire activity on one
// account) and a volume check (rolling-day count above a learned
// baseline).
package fraud

import (
	"fmt"
	"sync"

	"github.com/corebank-dev/corebank/internal/model"
)

const dayMillis = 24 * 60 * 60 * 1000

// Ledger is the transaction history the detector reads.
type Ledger interface {
	ListByAccount(accountID int) ([]model.Transaction, error)
	ListByDateRange(startMs, endMs int64) ([]model.Transaction, error)
}

// Detector holds the screening thresholds. The daily baseline is
// mutable so it can be raised from observed traffic.
type Detector struct {
	ledger         Ledger
	velocityWindow int64

	mu       sync.Mutex
	baseline int
}

// NewDetector creates a Detector. baseline is the highest daily total
// transaction count observed so far; velocityWindowMs is the minimum
// allowed spacing for the velocity check (1000 ms if zero).
func NewDetector(ledger Ledger, baseline int, velocityWindowMs int64) *Detector {
	if velocityWindowMs == 0 {
		velocityWindowMs = 1000
	}
	return &Detector{ledger: ledger, baseline: baseline, velocityWindow: velocityWindowMs}
}

// Baseline returns the current daily-volume baseline.
func (d *Detector) Baseline() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.baseline
}

// Observe raises the baseline when a higher daily total is seen.
func (d *Detector) Observe(dailyTotal int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if dailyTotal > d.baseline {
		d.baseline = dailyTotal
	}
}

// Suspicious screens a candidate transaction that has NOT yet been
// appended to the ledger; the candidate itself counts toward both
// heuristics. A true result means the transaction should be rejected.
func (d *Detector) Suspicious(candidate model.Transaction) (bool, error) {
	history, err := d.ledger.ListByAccount(candidate.AccountID)
	if err != nil {
		return false, fmt.Errorf("loading account history: %w", err)
	}

	// Velocity: with the candidate in place, compare its timestamp
	// against the third-from-last transaction on the account.
	history = append(history, candidate)
	if len(history) > 2 {
		third := history[len(history)-3]
		if absDiff(candidate.Timestamp, third.Timestamp) < d.velocityWindow {
			return true, nil
		}
	}

	// Volume: rolling 24-hour window ending at the candidate.
	recent, err := d.ledger.ListByDateRange(candidate.Timestamp-dayMillis, candidate.Timestamp)
	if err != nil {
		return false, fmt.Errorf("loading daily window: %w", err)
	}
	count := len(recent) + 1
	if float64(count) > 1.5*float64(d.Baseline()) {
		return true, nil
	}

	return false, nil
}

func absDiff(a, b int64) int64 {
	if a < b {
		return b - a
	}
	return a - b
}
