package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/cashpoint/cashpoint/internal/auth"
	"github.com/cashpoint/cashpoint/internal/ledger"
	"github.com/cashpoint/cashpoint/internal/store"
)

// Session drives the line-oriented menu loop. It is the thin interactive
// boundary around the account engine and authentication gate; all validation
// lives behind those.
type Session struct {
	raw    io.Reader
	in     *bufio.Reader
	out    io.Writer
	engine *ledger.Engine
	gate   *auth.Gate
	limit  int
	logger *slog.Logger
}

// New builds a session reading commands from in and writing prompts to out.
func New(in io.Reader, out io.Writer, engine *ledger.Engine, gate *auth.Gate, statementLimit int, logger *slog.Logger) *Session {
	return &Session{
		raw:    in,
		in:     bufio.NewReader(in),
		out:    out,
		engine: engine,
		gate:   gate,
		limit:  statementLimit,
		logger: logger,
	}
}

// Run presents the top-level menu until the holder chooses Exit or input ends.
func (s *Session) Run(ctx context.Context, l ledger.Ledger) error {
	for {
		fmt.Fprint(s.out, "\n--- ATM ---\n1. Login\n2. Exit\n")
		choice, err := s.readLine("Choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch choice {
		case "1":
			s.login(ctx, l)
		case "2":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice")
		}
	}
}

func (s *Session) login(ctx context.Context, l ledger.Ledger) {
	accountID, err := s.readLine("Enter account number: ")
	if err != nil {
		return
	}

	id, err := s.gate.Authenticate(l, accountID, s.pinSupplier("Enter PIN: "))
	if err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}

	sessionID := uuid.NewString()
	s.logger.Info("session started", "session", sessionID, "account", id)
	s.menu(ctx, l, id)
	s.logger.Info("session ended", "session", sessionID, "account", id)
}

func (s *Session) menu(ctx context.Context, l ledger.Ledger, id string) {
	for {
		fmt.Fprint(s.out, "\n1. Balance Enquiry\n2. Withdrawal\n3. Fast Cash\n4. Cash Deposit\n5. Transfer Funds\n6. Mini Statement\n7. Change PIN\n8. Logout\n")
		choice, err := s.readLine("Choice: ")
		if err != nil {
			return
		}
		switch choice {
		case "1":
			s.balance(l, id)
		case "2":
			s.withdraw(ctx, l, id)
		case "3":
			s.fastCash(ctx, l, id)
		case "4":
			s.deposit(ctx, l, id)
		case "5":
			s.transfer(ctx, l, id)
		case "6":
			s.miniStatement(l, id)
		case "7":
			s.changePIN(ctx, l, id)
		case "8":
			return
		default:
			fmt.Fprintln(s.out, "Invalid choice")
		}
	}
}

func (s *Session) balance(l ledger.Ledger, id string) {
	balance, err := s.engine.Balance(l, id)
	if err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}
	fmt.Fprintf(s.out, "\nAvailable balance: %.2f\n", balance)
}

func (s *Session) withdraw(ctx context.Context, l ledger.Ledger, id string) {
	raw, err := s.readLine("Enter withdrawal amount: ")
	if err != nil {
		return
	}
	amount, err := ledger.ParseAmount(raw)
	if err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}
	dispensed, err := s.engine.Withdraw(ctx, l, id, amount)
	if err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}
	fmt.Fprintf(s.out, "Please collect your cash: %.2f\n", dispensed)
}

func (s *Session) fastCash(ctx context.Context, l ledger.Ledger, id string) {
	for i, d := range s.engine.Denominations() {
		fmt.Fprintf(s.out, " %d. %.0f\n", i+1, d)
	}
	raw, err := s.readLine("Choose option: ")
	if err != nil {
		return
	}
	selection, err := strconv.Atoi(raw)
	if err != nil {
		selection = 0 // out of range, rejected by the engine
	}
	dispensed, err := s.engine.FastCash(ctx, l, id, selection)
	if err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}
	fmt.Fprintf(s.out, "Dispensed: %.0f\n", dispensed)
}

func (s *Session) deposit(ctx context.Context, l ledger.Ledger, id string) {
	raw, err := s.readLine("Enter deposit amount: ")
	if err != nil {
		return
	}
	amount, err := ledger.ParseAmount(raw)
	if err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}
	if err := s.engine.Deposit(ctx, l, id, amount); err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}
	fmt.Fprintf(s.out, "%.2f deposited successfully\n", amount)
}

func (s *Session) transfer(ctx context.Context, l ledger.Ledger, id string) {
	beneficiary, err := s.readLine("Enter beneficiary account number: ")
	if err != nil {
		return
	}
	raw, err := s.readLine("Enter transfer amount: ")
	if err != nil {
		return
	}
	amount, err := ledger.ParseAmount(raw)
	if err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}
	if err := s.engine.Transfer(ctx, l, id, beneficiary, amount); err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}
	fmt.Fprintln(s.out, "Transfer successful")
}

func (s *Session) miniStatement(l ledger.Ledger, id string) {
	entries, err := s.engine.MiniStatement(l, id, s.limit)
	if err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No transactions yet")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(s.out, "%s | %s | %.2f | Bal: %.2f\n", e.Time, e.Desc, e.Amount, e.Balance)
	}
}

func (s *Session) changePIN(ctx context.Context, l ledger.Ledger, id string) {
	current, err := s.readSecret("Enter current PIN: ")
	if err != nil {
		return
	}
	proposed, err := s.readSecret("Enter new 4-digit PIN: ")
	if err != nil {
		return
	}
	if err := s.engine.ChangePIN(ctx, l, id, current, proposed); err != nil {
		fmt.Fprintln(s.out, message(err))
		return
	}
	fmt.Fprintln(s.out, "PIN changed successfully")
}

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret hides PIN input when attached to a real terminal and falls back
// to a plain line read otherwise, which keeps the loop testable.
func (s *Session) readSecret(prompt string) (string, error) {
	if f, ok := s.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(s.out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(s.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return s.readLine(prompt)
}

func (s *Session) pinSupplier(prompt string) auth.PINSupplier {
	return func() (string, error) {
		return s.readSecret(prompt)
	}
}

// message maps domain errors onto the lines shown to the holder.
func message(err error) string {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return "Account not found"
	case errors.Is(err, auth.ErrAuthenticationFailed):
		return "Too many incorrect PIN attempts"
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "Invalid amount"
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "Insufficient balance"
	case errors.Is(err, ledger.ErrInvalidSelection):
		return "Invalid selection"
	case errors.Is(err, ledger.ErrInvalidBeneficiary):
		return "Invalid beneficiary account"
	case errors.Is(err, ledger.ErrIncorrectPIN):
		return "Incorrect PIN"
	case errors.Is(err, ledger.ErrInvalidPINFormat):
		return "PIN must be 4 digits"
	case errors.Is(err, store.ErrPersistence):
		return "Could not save the transaction, please try again"
	default:
		return err.Error()
	}
}
