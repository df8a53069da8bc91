package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powchain/config"
	chainerr "powchain/errors"
	"powchain/events"
	"powchain/record"
)

func testConfig(difficulty int) *config.ChainConfig {
	cfg := config.DefaultChainConfig()
	cfg.Difficulty = difficulty
	return cfg
}

func newTestLedger(t *testing.T, difficulty int) *Ledger {
	t.Helper()
	l, err := NewLedger(testConfig(difficulty), nil, nil)
	require.NoError(t, err)
	return l
}

func TestGenesisStability(t *testing.T) {
	l := newTestLedger(t, 1)

	require.Equal(t, 1, l.Height(), "fresh ledger must hold exactly the genesis record")

	genesis := l.Latest()
	assert.Equal(t, uint64(0), genesis.Index)
	assert.Equal(t, "0", genesis.PrevDigest)
	assert.NotEmpty(t, genesis.Digest)
	assert.True(t, l.Validate())
}

func TestEndToEndAppendScenario(t *testing.T) {
	l := newTestLedger(t, 1)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, record.New(1, "t1", "A")))
	require.NoError(t, l.Append(ctx, record.New(2, "t2", "B")))

	records := l.Records()
	require.Len(t, records, 3)
	assert.True(t, l.Validate())
	assert.Equal(t, records[1].Digest, records[2].PrevDigest)
	assert.Equal(t, records[2], l.Latest())
}

func TestAppendOverwritesCallerLinks(t *testing.T) {
	l := newTestLedger(t, 1)

	rec := record.New(1, "t1", "A")
	rec.PrevDigest = "forged"
	rec.Digest = "also forged"
	require.NoError(t, l.Append(context.Background(), rec))

	assert.Equal(t, l.Records()[0].Digest, rec.PrevDigest, "append must not trust caller-supplied links")
	assert.True(t, record.MeetsDifficulty(rec.Digest, 1))
}

func TestLinkInvariant(t *testing.T) {
	l := newTestLedger(t, 1)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, l.Append(ctx, record.New(uint64(i), "t", i)))
	}

	records := l.Records()
	for i := 1; i < len(records); i++ {
		assert.Equal(t, records[i-1].Digest, records[i].PrevDigest, "link broken at index %d", i)
	}
}

func TestTamperDetection(t *testing.T) {
	l := newTestLedger(t, 1)
	ctx := context.Background()
	require.NoError(t, l.Append(ctx, record.New(1, "t1", "honest payload")))
	require.NoError(t, l.Append(ctx, record.New(2, "t2", "another payload")))
	require.True(t, l.Validate())

	l.Records()[1].Payload = "rewritten history"

	assert.False(t, l.Validate())
	chainError := l.VerifyDetail()
	require.NotNil(t, chainError)
	assert.Equal(t, chainerr.ChainErrorCode(chainerr.ErrCodeDigestMismatch), chainError.Code)
}

func TestBreakLinkDetection(t *testing.T) {
	l := newTestLedger(t, 0)
	ctx := context.Background()
	require.NoError(t, l.Append(ctx, record.New(1, "t1", "A")))
	require.NoError(t, l.Append(ctx, record.New(2, "t2", "B")))
	require.True(t, l.Validate())

	// Rewrite the link and reseal the digest so only the linkage check can
	// catch it.
	tampered := l.Records()[2]
	tampered.PrevDigest = "not the real predecessor"
	digest, err := tampered.ComputeDigest()
	require.NoError(t, err)
	tampered.Digest = digest

	assert.False(t, l.Validate())
	chainError := l.VerifyDetail()
	require.NotNil(t, chainError)
	assert.Equal(t, chainerr.ChainErrorCode(chainerr.ErrCodeLinkMismatch), chainError.Code)
}

func TestAppendCancelledLeavesChainUnchanged(t *testing.T) {
	l := newTestLedger(t, 6)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	before := l.Latest()
	err := l.Append(ctx, record.New(1, "t1", "never lands"))
	require.Error(t, err)

	assert.Equal(t, 1, l.Height())
	assert.Equal(t, before, l.Latest())
	assert.True(t, l.Validate())
}

func TestNewLedgerRejectsNegativeDifficulty(t *testing.T) {
	_, err := NewLedger(testConfig(-3), nil, nil)
	require.Error(t, err)

	var chainError *chainerr.ChainError
	require.ErrorAs(t, err, &chainError)
	assert.Equal(t, chainerr.ChainErrorCode(chainerr.ErrCodeInvalidDifficulty), chainError.Code)
}

func TestNewLedgerNilConfigUsesDefaults(t *testing.T) {
	l, err := NewLedger(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDifficulty, l.Difficulty())
	assert.True(t, l.Validate())
}

func TestAppendPublishesMinedEvent(t *testing.T) {
	bus := events.NewEventBus()
	_, ch := bus.Subscribe()

	l, err := NewLedger(testConfig(1), nil, bus)
	require.NoError(t, err)
	require.NoError(t, l.Append(context.Background(), record.New(1, "t1", "A")))

	select {
	case event := <-ch:
		mined, ok := event.(*events.RecordMined)
		require.True(t, ok, "expected a RecordMined event")
		assert.Equal(t, uint64(1), mined.Index())
		assert.Equal(t, l.Latest().Digest, mined.RecordDigest())
		assert.GreaterOrEqual(t, mined.Attempts(), uint64(1))
	case <-time.After(1 * time.Second):
		t.Fatal("Timeout waiting for RecordMined event")
	}
}

func TestSnapshotAndDump(t *testing.T) {
	l := newTestLedger(t, 1)
	require.NoError(t, l.Append(context.Background(), record.New(1, "t1", "A")))

	state := l.Snapshot()
	assert.Len(t, state.Records, 2)
	assert.Equal(t, 1, state.Difficulty)
	assert.True(t, state.Valid)

	dump, err := l.Dump()
	require.NoError(t, err)
	assert.Contains(t, string(dump), `"difficulty": 1`)
	assert.Contains(t, string(dump), `"prev_digest"`)
}
