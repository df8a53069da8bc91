package record

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"powchain/errors"
	"powchain/jsonx"
	"powchain/logx"
)

// Record is one entry in the hash chain. Index, Timestamp and Payload are
// caller-supplied; PrevDigest, Digest and Nonce are owned by the ledger and
// settle during mining, after which the record is never mutated again.
type Record struct {
	Index      uint64      `json:"index"`
	Timestamp  string      `json:"timestamp"`
	Payload    interface{} `json:"payload"`
	PrevDigest string      `json:"prev_digest"`
	Digest     string      `json:"digest"`
	Nonce      uint64      `json:"nonce"`
}

// New builds an unsealed candidate record. PrevDigest and Digest are left
// empty; the ledger overwrites both during append.
func New(index uint64, timestamp string, payload interface{}) *Record {
	return &Record{
		Index:     index,
		Timestamp: timestamp,
		Payload:   payload,
	}
}

// ComputeDigest hashes the record's current field values with SHA-256 and
// returns the lowercase hex digest. The payload goes through canonical JSON
// so structurally equal payloads hash identically on every platform.
func (r *Record) ComputeDigest() (string, error) {
	payload, err := jsonx.MarshalCanonical(r.Payload)
	if err != nil {
		return "", fmt.Errorf("could not serialize payload of record %d: %w", r.Index, err)
	}

	data := fmt.Sprintf("%d%s%s%s%d", r.Index, r.PrevDigest, r.Timestamp, payload, r.Nonce)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:]), nil
}

// MeetsDifficulty reports whether digest carries at least difficulty leading
// '0' hex characters. Difficulty 0 is satisfied by any digest.
func MeetsDifficulty(digest string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	if difficulty > len(digest) {
		return false
	}
	return digest[:difficulty] == strings.Repeat("0", difficulty)
}

// Mine searches nonces from 0 upward until the record's digest satisfies
// difficulty, then stores the winning digest and nonce on the record. The
// search is unbounded; ctx is the only way out of a long run. Returns the
// number of digests computed.
//
// A cancelled search leaves Digest empty and the record unusable for
// appending, never a half-valid entry.
func (r *Record) Mine(ctx context.Context, difficulty int, progressEvery uint64) (uint64, error) {
	if difficulty < 0 {
		return 0, errors.NewInvalidDifficultyError(fmt.Sprintf("difficulty must be non-negative, got %d", difficulty))
	}

	r.Nonce = 0
	r.Digest = ""
	var attempts uint64

	for {
		if err := ctx.Err(); err != nil {
			return attempts, errors.NewMiningCancelledError(fmt.Sprintf("mining record %d stopped after %d attempts: %v", r.Index, attempts, err))
		}

		digest, err := r.ComputeDigest()
		if err != nil {
			return attempts, err
		}
		attempts++

		if MeetsDifficulty(digest, difficulty) {
			r.Digest = digest
			return attempts, nil
		}
		r.Nonce++

		if progressEvery > 0 && attempts%progressEvery == 0 {
			logx.Debug("MINER", fmt.Sprintf("Still mining record %d | difficulty=%d attempts=%d", r.Index, difficulty, attempts))
		}
	}
}
