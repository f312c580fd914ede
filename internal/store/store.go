package store

import "errors"

// ErrPersistence marks failures reading or writing persisted ledger state.
// Operations that hit it abort, and the in-memory ledger stays authoritative
// until a later save succeeds.
var ErrPersistence = errors.New("ledger persistence failure")
