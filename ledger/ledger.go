package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"powchain/config"
	"powchain/errors"
	"powchain/events"
	"powchain/logx"
	"powchain/monitoring"
	"powchain/record"
	"powchain/utils"
)

// genesisPrevDigest is the well-known predecessor link of the first record.
const genesisPrevDigest = "0"

// Ledger owns the ordered record sequence and the difficulty every appended
// record must be mined at. One writer at a time: Append holds the write lock
// from the Latest read through the push, so no two records are ever mined
// against the same predecessor.
type Ledger struct {
	mu            sync.RWMutex
	records       []*record.Record
	difficulty    int
	progressEvery uint64
	eventBus      *events.EventBus
}

// NewLedger seeds a ledger with the genesis record from cfg and the chain
// difficulty. minerCfg and eventBus may be nil. Fails on a negative
// difficulty before any mining can happen.
func NewLedger(cfg *config.ChainConfig, minerCfg *config.MinerConfig, eventBus *events.EventBus) (*Ledger, error) {
	if cfg == nil {
		cfg = config.DefaultChainConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	progressEvery := uint64(config.DefaultProgressInterval)
	if minerCfg != nil {
		progressEvery = minerCfg.ProgressInterval
	}

	genesis := record.New(0, cfg.Genesis.Timestamp, cfg.Genesis.Payload)
	genesis.PrevDigest = genesisPrevDigest
	digest, err := genesis.ComputeDigest()
	if err != nil {
		return nil, fmt.Errorf("could not seal genesis record: %w", err)
	}
	genesis.Digest = digest

	l := &Ledger{
		records:       []*record.Record{genesis},
		difficulty:    cfg.Difficulty,
		progressEvery: progressEvery,
		eventBus:      eventBus,
	}

	monitoring.SetChainHeight(1)
	logx.Info("LEDGER", fmt.Sprintf("Ledger constructed | difficulty=%d genesis_digest=%s", l.difficulty, utils.ShortenLog(genesis.Digest)))
	return l, nil
}

// Difficulty returns the leading-zero requirement appended records are mined at.
func (l *Ledger) Difficulty() int {
	return l.difficulty
}

// Latest returns the last record in the chain. Always defined: construction
// guarantees at least the genesis record.
func (l *Ledger) Latest() *record.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.records[len(l.records)-1]
}

// Height returns the number of records in the chain, genesis included.
func (l *Ledger) Height() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Records returns a copy of the chain slice. The records themselves are
// shared, not copied.
func (l *Ledger) Records() []*record.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*record.Record, len(l.records))
	copy(out, l.records)
	return out
}

// Append links rec to the current chain tip, mines it at the ledger
// difficulty and pushes it. rec's PrevDigest, Digest and Nonce are
// overwritten; whatever the caller put there is not trusted. Blocks for the
// full mining run unless ctx is cancelled, in which case the chain is left
// unchanged and ctx's error comes back wrapped.
func (l *Ledger) Append(ctx context.Context, rec *record.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec.PrevDigest = l.records[len(l.records)-1].Digest

	start := time.Now()
	attempts, err := rec.Mine(ctx, l.difficulty, l.progressEvery)
	if err != nil {
		return err
	}
	end := time.Now()
	elapsed := end.Sub(start)

	l.records = append(l.records, rec)

	monitoring.ObserveMining(attempts, utils.SecondsBetween(start, end))
	monitoring.SetChainHeight(uint64(len(l.records)))
	logx.Info("LEDGER", fmt.Sprintf("Record mined and appended | index=%d digest=%s nonce=%d attempts=%d elapsed=%s", rec.Index, utils.ShortenLog(rec.Digest), rec.Nonce, attempts, elapsed))

	if l.eventBus != nil {
		l.eventBus.Publish(events.NewRecordMined(rec.Index, rec.Digest, rec.Nonce, attempts, elapsed))
	}
	return nil
}

// VerifyDetail walks the chain and returns a typed error for the first
// broken record, or nil when the chain is intact. Genesis is never checked
// against a predecessor.
func (l *Ledger) VerifyDetail() *errors.ChainError {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := 1; i < len(l.records); i++ {
		current := l.records[i]
		previous := l.records[i-1]

		digest, err := current.ComputeDigest()
		if err != nil {
			return errors.NewChainError(errors.ErrCodeInternal, fmt.Sprintf("could not recompute digest of record %d: %v", i, err))
		}
		if digest != current.Digest {
			return errors.NewDigestMismatchError(fmt.Sprintf("record %d stored digest does not match its fields", i))
		}
		if current.PrevDigest != previous.Digest {
			return errors.NewLinkMismatchError(fmt.Sprintf("record %d does not link to record %d", i, i-1))
		}
	}
	return nil
}

// Validate reports chain integrity as a single boolean, collapsing digest
// and link violations together.
func (l *Ledger) Validate() bool {
	if chainErr := l.VerifyDetail(); chainErr != nil {
		monitoring.IncreaseValidationFailCount()
		logx.Warn("LEDGER", "Chain validation failed: ", chainErr.Error())
		return false
	}
	return true
}
