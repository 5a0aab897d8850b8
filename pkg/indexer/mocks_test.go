package indexer

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/roastarena/backend/pkg/arena"
	"github.com/roastarena/backend/pkg/arenadb"
)

type mockSource struct {
	heightFn func(ctx context.Context) (uint64, error)
	eventsFn func(ctx context.Context, from, to uint64) ([]types.Log, error)
}

func (m *mockSource) Height(ctx context.Context) (uint64, error) {
	return m.heightFn(ctx)
}

func (m *mockSource) Events(ctx context.Context, from, to uint64) ([]types.Log, error) {
	return m.eventsFn(ctx, from, to)
}

type mockStore struct {
	insertRoastFn       func(ctx context.Context, roast *arena.Roast) error
	insertParticipantFn func(ctx context.Context, p *arena.Participant) error
	markSettledFn       func(ctx context.Context, roastID int64, s arena.Settlement) error
	markCancelledFn     func(ctx context.Context, roastID int64) error
	getCursorFn         func(ctx context.Context, name string) (uint64, error)
	setCursorFn         func(ctx context.Context, name string, height uint64) error
}

func (m *mockStore) InsertRoast(ctx context.Context, roast *arena.Roast) error {
	return m.insertRoastFn(ctx, roast)
}

func (m *mockStore) InsertParticipant(ctx context.Context, p *arena.Participant) error {
	return m.insertParticipantFn(ctx, p)
}

func (m *mockStore) MarkSettled(ctx context.Context, roastID int64, s arena.Settlement) error {
	return m.markSettledFn(ctx, roastID, s)
}

func (m *mockStore) MarkCancelled(ctx context.Context, roastID int64) error {
	return m.markCancelledFn(ctx, roastID)
}

func (m *mockStore) GetCursor(ctx context.Context, name string) (uint64, error) {
	return m.getCursorFn(ctx, name)
}

func (m *mockStore) SetCursor(ctx context.Context, name string, height uint64) error {
	return m.setCursorFn(ctx, name, height)
}

// memStore is an in-memory IndexStore with the same idempotency and
// conflict semantics as the postgres store.
type memStore struct {
	mu           sync.Mutex
	roasts       map[int64]*arena.Roast
	participants map[int64]map[string]bool
	cursors      map[string]uint64
}

func newMemStore() *memStore {
	return &memStore{
		roasts:       make(map[int64]*arena.Roast),
		participants: make(map[int64]map[string]bool),
		cursors:      make(map[string]uint64),
	}
}

func (m *memStore) InsertRoast(_ context.Context, roast *arena.Roast) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roasts[roast.RoastID]; ok {
		return nil
	}
	cp := *roast
	cp.State = arena.StateOpen
	m.roasts[roast.RoastID] = &cp
	return nil
}

func (m *memStore) InsertParticipant(_ context.Context, p *arena.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.participants[p.RoastID] == nil {
		m.participants[p.RoastID] = make(map[string]bool)
	}
	m.participants[p.RoastID][p.Address] = true
	return nil
}

func (m *memStore) MarkSettled(_ context.Context, roastID int64, s arena.Settlement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	roast, ok := m.roasts[roastID]
	if !ok {
		return arenadb.ErrRoastNotFound
	}
	if roast.State == arena.StateSettled {
		if roast.NumWinners != nil && *roast.NumWinners == s.NumWinners &&
			*roast.RoasterPool == s.RoasterPool && *roast.VoterPool == s.VoterPool &&
			*roast.WinnerVoterCount == s.WinnerVoterCount {
			return nil
		}
		return arenadb.ErrSettlementConflict
	}
	if roast.State == arena.StateCancelled {
		return arenadb.ErrSettlementConflict
	}
	roast.State = arena.StateSettled
	roast.NumWinners = &s.NumWinners
	roast.RoasterPool = &s.RoasterPool
	roast.VoterPool = &s.VoterPool
	roast.WinnerVoterCount = &s.WinnerVoterCount
	return nil
}

func (m *memStore) MarkCancelled(_ context.Context, roastID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	roast, ok := m.roasts[roastID]
	if !ok {
		return arenadb.ErrRoastNotFound
	}
	switch roast.State {
	case arena.StateCancelled:
		return nil
	case arena.StateSettled:
		return arenadb.ErrSettlementConflict
	}
	roast.State = arena.StateCancelled
	return nil
}

func (m *memStore) GetCursor(_ context.Context, name string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cursor, ok := m.cursors[name]
	if !ok {
		return 0, arenadb.ErrCursorNotFound
	}
	return cursor, nil
}

func (m *memStore) SetCursor(_ context.Context, name string, height uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursors[name] = height
	return nil
}

func (m *memStore) cursor(name string) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cursor, ok := m.cursors[name]
	return cursor, ok
}

var errBoom = errors.New("boom")
