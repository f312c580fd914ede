package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/cashpoint/cashpoint/internal/ledger"
	"github.com/cashpoint/cashpoint/internal/logging"
	"github.com/cashpoint/cashpoint/internal/store"
)

// scripted returns a supplier yielding the given PINs in order, counting calls.
func scripted(t *testing.T, pins ...string) (PINSupplier, *int) {
	t.Helper()
	calls := 0
	return func() (string, error) {
		if calls >= len(pins) {
			t.Fatalf("supplier exhausted after %d attempts", calls)
		}
		pin := pins[calls]
		calls++
		return pin, nil
	}, &calls
}

func TestAuthenticateFirstAttempt(t *testing.T) {
	gate := NewGate(3, logging.Discard())
	supplier, calls := scripted(t, "1234")

	id, err := gate.Authenticate(ledger.Demo(), "1001", supplier)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if id != "1001" {
		t.Fatalf("expected account 1001, got %q", id)
	}
	if *calls != 1 {
		t.Fatalf("expected one attempt, got %d", *calls)
	}
}

func TestAuthenticateThirdAttempt(t *testing.T) {
	gate := NewGate(3, logging.Discard())
	supplier, calls := scripted(t, "0000", "1111", "1234")

	if _, err := gate.Authenticate(ledger.Demo(), "1001", supplier); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if *calls != 3 {
		t.Fatalf("expected three attempts, got %d", *calls)
	}
}

func TestAuthenticateExhaustsBudget(t *testing.T) {
	gate := NewGate(3, logging.Discard())
	// a fourth PIN is available but must never be requested
	supplier, calls := scripted(t, "0000", "1111", "2222", "1234")

	if _, err := gate.Authenticate(ledger.Demo(), "1001", supplier); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failed, got %v", err)
	}
	if *calls != 3 {
		t.Fatalf("expected exactly three attempts, got %d", *calls)
	}
}

func TestAuthenticateUnknownAccount(t *testing.T) {
	gate := NewGate(3, logging.Discard())
	supplier, calls := scripted(t, "1234")

	if _, err := gate.Authenticate(ledger.Demo(), "4242", supplier); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
	if *calls != 0 {
		t.Fatalf("unknown account must not consume attempts, got %d", *calls)
	}
}

func TestAuthenticateSupplierError(t *testing.T) {
	gate := NewGate(3, logging.Discard())
	wantErr := errors.New("input closed")

	_, err := gate.Authenticate(ledger.Demo(), "1001", func() (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected supplier error, got %v", err)
	}
}

func TestAuthenticateAfterPINChange(t *testing.T) {
	mem := store.NewMemoryStore(nil)
	l, _ := mem.Load(context.Background())
	engine := ledger.NewEngine(mem, nil, logging.Discard())
	gate := NewGate(3, logging.Discard())

	if err := engine.ChangePIN(context.Background(), l, "1001", "1234", "8642"); err != nil {
		t.Fatalf("change pin: %v", err)
	}

	old, _ := scripted(t, "1234", "1234", "1234")
	if _, err := gate.Authenticate(l, "1001", old); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("old PIN must be rejected, got %v", err)
	}

	fresh, _ := scripted(t, "8642")
	if _, err := gate.Authenticate(l, "1001", fresh); err != nil {
		t.Fatalf("new PIN must authenticate: %v", err)
	}
}
