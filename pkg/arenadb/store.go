package arenadb

import (
	"context"
	"errors"

	"github.com/roastarena/backend/pkg/arena"
)

// ErrRoastNotFound is returned when a roast lookup finds no indexed record.
var ErrRoastNotFound = errors.New("roast not found")

// ErrSettlementConflict is returned when a terminal transition delivers
// values that disagree with an already-terminal record. This is a
// data-integrity fault and must surface to an operator, never be
// silently overwritten.
var ErrSettlementConflict = errors.New("settlement conflicts with terminal roast record")

// ErrCursorNotFound is returned on cold start, before any cycle has
// persisted a cursor.
var ErrCursorNotFound = errors.New("sync cursor not found")

// IndexStore is the engine's write surface: the only legal mutation entry
// points into the roast and participant tables, plus the persisted cursor.
// All writes are idempotent; re-applying the same event is a no-op.
type IndexStore interface {
	// InsertRoast inserts a roast record, first writer wins: a record
	// already present under the same roastId is left untouched.
	InsertRoast(ctx context.Context, roast *arena.Roast) error
	// InsertParticipant inserts a membership row; a duplicate
	// (roastId, address) pair is absorbed as a no-op.
	InsertParticipant(ctx context.Context, p *arena.Participant) error
	// MarkSettled transitions a roast to SETTLED and fills the settlement
	// fields. Missing record: ErrRoastNotFound. Already settled with
	// identical values: no-op. Terminal with differing values:
	// ErrSettlementConflict.
	MarkSettled(ctx context.Context, roastID int64, s arena.Settlement) error
	// MarkCancelled transitions a roast to CANCELLED, same idempotency
	// pattern as MarkSettled.
	MarkCancelled(ctx context.Context, roastID int64) error

	GetCursor(ctx context.Context, name string) (uint64, error)
	SetCursor(ctx context.Context, name string, height uint64) error
}

// ParticipantRoast is one row of a wallet's participation history.
type ParticipantRoast struct {
	RoastID    int64
	State      arena.State
	OpenUntil  int64
	VoteUntil  int64
	RoastStake string
	VoteStake  string
	NumWinners *int64
}

// ReadStore is the read-only surface consumed by the API layer.
type ReadStore interface {
	GetRoast(ctx context.Context, roastID int64) (*arena.Roast, error)
	ListRecentRoasts(ctx context.Context, limit int) ([]*arena.Roast, error)
	ListParticipantRoasts(ctx context.Context, address string) ([]*ParticipantRoast, error)
}

// Store is the full store contract implemented by the postgres store.
type Store interface {
	IndexStore
	ReadStore
}
