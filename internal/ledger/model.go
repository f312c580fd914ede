package ledger

// TimeLayout is the timestamp format recorded on history entries.
const TimeLayout = "2006-01-02 15:04:05"

// Entry is one immutable record of a balance-affecting event. Balance is the
// account balance immediately after Amount was applied, not a delta.
type Entry struct {
	Time    string  `json:"time"`
	Desc    string  `json:"desc"`
	Amount  float64 `json:"amount"`
	Balance float64 `json:"balance"`
}

// Account holds one holder's identity, credential, balance and history.
type Account struct {
	Name    string  `json:"name"`
	PIN     string  `json:"pin"`
	Balance float64 `json:"balance"`
	History []Entry `json:"history"`
}

// Ledger maps account ids to records. It is the unit of persistence: every
// mutation to any record is followed by a full write-back.
type Ledger map[string]*Account

// Clone returns a deep copy of the ledger so callers cannot alias internal state.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for id, a := range l {
		cp := *a
		cp.History = append([]Entry(nil), a.History...)
		out[id] = &cp
	}
	return out
}

// Demo returns the ledger seeded on first run when no persisted state exists.
func Demo() Ledger {
	return Ledger{
		"1001": {Name: "Harsha", PIN: "1234", Balance: 50000, History: []Entry{}},
		"1002": {Name: "Ravi", PIN: "4321", Balance: 15000, History: []Entry{}},
	}
}
