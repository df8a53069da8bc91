package ledger

import (
	"powchain/jsonx"
	"powchain/record"
)

// DumpState is the full observable state of a ledger, suitable for printing
// or parity comparison. Not a stable wire contract.
type DumpState struct {
	Records    []*record.Record `json:"records"`
	Difficulty int              `json:"difficulty"`
	Valid      bool             `json:"valid"`
}

// Snapshot captures the current chain, difficulty and validity result.
func (l *Ledger) Snapshot() DumpState {
	return DumpState{
		Records:    l.Records(),
		Difficulty: l.Difficulty(),
		Valid:      l.Validate(),
	}
}

// Dump renders the ledger state as indented JSON. Pure formatting over a
// snapshot; printing it is the caller's business.
func (l *Ledger) Dump() ([]byte, error) {
	return jsonx.MarshalIndent(l.Snapshot(), "", "  ")
}
