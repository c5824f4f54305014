package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/corebank-dev/corebank/internal/auditlog"
	"github.com/corebank-dev/corebank/internal/bank"
	"github.com/corebank-dev/corebank/internal/config"
	"github.com/corebank-dev/corebank/internal/fraud"
	"github.com/corebank-dev/corebank/internal/store"
)

// env bundles everything a subcommand needs: the loaded config, the
// opened store, and the wired engine.
type env struct {
	root string
	cfg  *config.Config
	st   *store.SQLite
	svc  *bank.Service
}

// openEnv loads corebank.yaml from dir and wires the engine over the
// configured SQLite store.
func openEnv(dir string) (*env, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, "corebank.yaml"))
	if err != nil {
		return nil, err
	}

	st, err := store.OpenSQLite(filepath.Join(root, cfg.Store.Path))
	if err != nil {
		return nil, err
	}

	policy, err := bank.PolicyFromConfig(cfg.Policy)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("invalid policy config: %w", err)
	}

	detector := fraud.NewDetector(st, cfg.Fraud.HighestDailyTotalTransactions, cfg.Fraud.VelocityWindowMillis)
	return &env{
		root: root,
		cfg:  cfg,
		st:   st,
		svc:  bank.NewService(st, detector, policy),
	}, nil
}

func (e *env) close() {
	_ = e.st.Close()
}

// audit appends one row to the audit log; audit failures are reported
// but never mask the operation's own result.
func (e *env) audit(operation string, userID, accountID int, amount string, opErr error) {
	outcome := "ok"
	if opErr != nil {
		outcome = opErr.Error()
	}
	err := auditlog.Append(e.root, []auditlog.Entry{{
		Timestamp: time.Now().UTC(),
		Operation: operation,
		UserID:    userID,
		AccountID: accountID,
		Amount:    amount,
		Outcome:   outcome,
	}})
	if err != nil {
		fmt.Printf("warning: audit log: %v\n", err)
	}
}
