package events

import (
	"time"
)

// EventType is an enum-like string type for ledger events
type EventType string

const (
	EventRecordMined EventType = "RecordMined"
)

// LedgerEvent represents any event that occurs in the ledger
type LedgerEvent interface {
	Type() EventType
	Timestamp() time.Time
	RecordDigest() string
}

// RecordMined event when a record's nonce search completes and the record
// joins the chain
type RecordMined struct {
	index     uint64
	digest    string
	nonce     uint64
	attempts  uint64
	elapsed   time.Duration
	timestamp time.Time
}

func NewRecordMined(index uint64, digest string, nonce uint64, attempts uint64, elapsed time.Duration) *RecordMined {
	return &RecordMined{
		index:     index,
		digest:    digest,
		nonce:     nonce,
		attempts:  attempts,
		elapsed:   elapsed,
		timestamp: time.Now(),
	}
}

func (e *RecordMined) Type() EventType {
	return EventRecordMined
}

func (e *RecordMined) Timestamp() time.Time {
	return e.timestamp
}

func (e *RecordMined) RecordDigest() string {
	return e.digest
}

func (e *RecordMined) Index() uint64 {
	return e.index
}

func (e *RecordMined) Nonce() uint64 {
	return e.nonce
}

func (e *RecordMined) Attempts() uint64 {
	return e.attempts
}

func (e *RecordMined) Elapsed() time.Duration {
	return e.elapsed
}
