package auth

import (
	"errors"
	"log/slog"

	"github.com/cashpoint/cashpoint/internal/ledger"
)

// DefaultAttempts is the PIN retry budget for one authentication.
const DefaultAttempts = 3

// ErrAuthenticationFailed indicates the attempt budget was exhausted without
// a matching PIN. No lockout is persisted; a later session starts fresh.
var ErrAuthenticationFailed = errors.New("authentication failed")

// PINSupplier yields successive PIN attempts.
type PINSupplier func() (string, error)

// Gate validates an account id and PIN against the ledger with a bounded
// retry budget.
type Gate struct {
	attempts int
	logger   *slog.Logger
}

// NewGate builds a gate allowing the given number of PIN attempts.
func NewGate(attempts int, logger *slog.Logger) *Gate {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Gate{attempts: attempts, logger: logger}
}

// Authenticate verifies the account exists and that a supplied PIN matches
// within the attempt budget. An unknown account fails immediately without
// consuming any attempts.
func (g *Gate) Authenticate(l ledger.Ledger, accountID string, pins PINSupplier) (string, error) {
	acct, ok := l[accountID]
	if !ok {
		g.logger.Warn("authentication rejected", "account", accountID, "reason", "unknown account")
		return "", ledger.ErrAccountNotFound
	}

	for attempt := 1; attempt <= g.attempts; attempt++ {
		pin, err := pins()
		if err != nil {
			return "", err
		}
		if pin == acct.PIN {
			g.logger.Info("authenticated", "account", accountID, "attempt", attempt)
			return accountID, nil
		}
		g.logger.Warn("incorrect pin", "account", accountID, "attempt", attempt)
	}

	g.logger.Warn("authentication failed", "account", accountID, "attempts", g.attempts)
	return "", ErrAuthenticationFailed
}
