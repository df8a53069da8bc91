package utils

import "time"

// SecondsBetween returns num of seconds between two timestamps
func SecondsBetween(from time.Time, to time.Time) float64 {
	return to.Sub(from).Seconds()
}

// NowToken returns the current time as an opaque timestamp token. Tokens are
// never parsed or ordered by the ledger; they are hashed as-is.
func NowToken() string {
	return time.Now().UTC().Format(time.RFC3339)
}
