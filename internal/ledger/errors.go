package ledger

import "errors"

var (
	// ErrAccountNotFound indicates the requested account id is not in the ledger.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount indicates an amount that is not a positive finite number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds occurs when a debit would take the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidSelection indicates a fast cash choice outside the denomination menu.
	ErrInvalidSelection = errors.New("invalid fast cash selection")

	// ErrInvalidBeneficiary indicates a transfer target that is absent from the
	// ledger or equal to the source account.
	ErrInvalidBeneficiary = errors.New("invalid beneficiary account")

	// ErrIncorrectPIN occurs when the current PIN supplied for a PIN change does
	// not match the stored one.
	ErrIncorrectPIN = errors.New("incorrect PIN")

	// ErrInvalidPINFormat indicates a proposed PIN that is not exactly 4 digits.
	ErrInvalidPINFormat = errors.New("PIN must be exactly 4 digits")
)
