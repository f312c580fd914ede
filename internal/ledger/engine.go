package ledger

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
)

// Store persists the ledger. Implementations live in internal/store.
type Store interface {
	Load(ctx context.Context) (Ledger, error)
	Save(ctx context.Context, l Ledger) error
}

// DefaultDenominations is the fast cash menu used when none is configured.
var DefaultDenominations = []float64{100, 500, 1000, 2000, 5000}

// DefaultStatementLimit bounds a mini statement when no limit is given.
const DefaultStatementLimit = 10

// Engine applies account operations against the ledger. Every mutating
// operation ends with a full write-back through the store; on a failed save
// the in-memory ledger remains the source of truth until a later save succeeds.
type Engine struct {
	store  Store
	denoms []float64
	logger *slog.Logger
	now    func() time.Time
}

// NewEngine builds an account engine over the given store. An empty
// denomination list falls back to DefaultDenominations.
func NewEngine(store Store, denominations []float64, logger *slog.Logger) *Engine {
	if len(denominations) == 0 {
		denominations = DefaultDenominations
	}
	return &Engine{store: store, denoms: denominations, logger: logger, now: time.Now}
}

// Denominations returns the fast cash menu in selection order.
func (e *Engine) Denominations() []float64 {
	out := make([]float64, len(e.denoms))
	copy(out, e.denoms)
	return out
}

// Balance returns the current balance. No mutation, no history entry.
func (e *Engine) Balance(l Ledger, accountID string) (float64, error) {
	acct, ok := l[accountID]
	if !ok {
		return 0, ErrAccountNotFound
	}
	return acct.Balance, nil
}

// Withdraw debits the account and records a withdrawal entry. It returns the
// dispensed amount.
func (e *Engine) Withdraw(ctx context.Context, l Ledger, accountID string, amount float64) (float64, error) {
	acct, ok := l[accountID]
	if !ok {
		return 0, ErrAccountNotFound
	}
	if !validAmount(amount) {
		return 0, ErrInvalidAmount
	}
	if amount > acct.Balance {
		return 0, ErrInsufficientFunds
	}

	acct.Balance -= amount
	e.append(acct, "Withdrawal", -amount)

	if err := e.store.Save(ctx, l); err != nil {
		return 0, err
	}
	e.logger.Info("withdrawal", "account", accountID, "amount", amount, "balance", acct.Balance)
	return amount, nil
}

// FastCash withdraws a fixed denomination chosen by 1-based menu selection.
func (e *Engine) FastCash(ctx context.Context, l Ledger, accountID string, selection int) (float64, error) {
	acct, ok := l[accountID]
	if !ok {
		return 0, ErrAccountNotFound
	}
	if selection < 1 || selection > len(e.denoms) {
		return 0, ErrInvalidSelection
	}
	amount := e.denoms[selection-1]
	if amount > acct.Balance {
		return 0, ErrInsufficientFunds
	}

	acct.Balance -= amount
	e.append(acct, "Fast Cash "+formatAmount(amount), -amount)

	if err := e.store.Save(ctx, l); err != nil {
		return 0, err
	}
	e.logger.Info("fast cash", "account", accountID, "amount", amount, "balance", acct.Balance)
	return amount, nil
}

// Deposit credits the account and records a deposit entry.
func (e *Engine) Deposit(ctx context.Context, l Ledger, accountID string, amount float64) error {
	acct, ok := l[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	if !validAmount(amount) {
		return ErrInvalidAmount
	}

	acct.Balance += amount
	e.append(acct, "Cash Deposit", amount)

	if err := e.store.Save(ctx, l); err != nil {
		return err
	}
	e.logger.Info("deposit", "account", accountID, "amount", amount, "balance", acct.Balance)
	return nil
}

// Transfer moves funds to the beneficiary account. Both records are mutated
// and both history entries appended before the single covering save, so a
// reader of the persisted ledger never observes a half-applied transfer.
func (e *Engine) Transfer(ctx context.Context, l Ledger, accountID, beneficiaryID string, amount float64) error {
	src, ok := l[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	dst, ok := l[beneficiaryID]
	if !ok || beneficiaryID == accountID {
		return ErrInvalidBeneficiary
	}
	if !validAmount(amount) {
		return ErrInvalidAmount
	}
	if amount > src.Balance {
		return ErrInsufficientFunds
	}

	src.Balance -= amount
	e.append(src, "Transfer to "+beneficiaryID, -amount)
	dst.Balance += amount
	e.append(dst, "Transfer from "+accountID, amount)

	if err := e.store.Save(ctx, l); err != nil {
		return err
	}
	e.logger.Info("transfer", "from", accountID, "to", beneficiaryID, "amount", amount)
	return nil
}

// MiniStatement returns the most recent limit entries in chronological order.
// An empty history yields an empty slice, not an error.
func (e *Engine) MiniStatement(l Ledger, accountID string, limit int) ([]Entry, error) {
	acct, ok := l[accountID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	if limit <= 0 {
		limit = DefaultStatementLimit
	}
	history := acct.History
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	out := make([]Entry, len(history))
	copy(out, history)
	return out, nil
}

// ChangePIN replaces the stored PIN after verifying the current one. No
// history entry is recorded.
func (e *Engine) ChangePIN(ctx context.Context, l Ledger, accountID, current, proposed string) error {
	acct, ok := l[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	if current != acct.PIN {
		return ErrIncorrectPIN
	}
	if !validPIN(proposed) {
		return ErrInvalidPINFormat
	}

	acct.PIN = proposed

	if err := e.store.Save(ctx, l); err != nil {
		return err
	}
	e.logger.Info("pin changed", "account", accountID)
	return nil
}

// ParseAmount converts raw user input into a positive finite amount.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !validAmount(amount) {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// append records an entry snapshotting the balance after the amount was
// applied. Callers mutate the balance first.
func (e *Engine) append(a *Account, desc string, amount float64) {
	a.History = append(a.History, Entry{
		Time:    e.now().Format(TimeLayout),
		Desc:    desc,
		Amount:  amount,
		Balance: a.Balance,
	})
}

func validAmount(a float64) bool {
	return a > 0 && !math.IsInf(a, 0) && !math.IsNaN(a)
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
