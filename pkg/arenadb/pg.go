package arenadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/roastarena/backend/pkg/arena"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates the postgres implementation of the arena index store.
func NewStore(db *bun.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) InsertRoast(ctx context.Context, roast *arena.Roast) error {
	dao := toRoastDao(roast)
	dao.State = string(arena.StateOpen)

	_, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (roast_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert roast %d: %w", roast.RoastID, err)
	}
	return nil
}

func (s *pgStore) InsertParticipant(ctx context.Context, p *arena.Participant) error {
	_, err := s.db.NewInsert().
		Model(toParticipantDao(p)).
		On("CONFLICT (roast_id, address) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert participant (%d, %s): %w", p.RoastID, p.Address, err)
	}
	return nil
}

func (s *pgStore) MarkSettled(ctx context.Context, roastID int64, settlement arena.Settlement) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		dao := new(RoastDao)
		err := tx.NewSelect().
			Model(dao).
			Column("state", "num_winners", "roaster_pool", "voter_pool", "winner_voter_count").
			Where("roast_id = ?", roastID).
			For("UPDATE").
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("settle roast %d: %w", roastID, ErrRoastNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load roast %d for settlement: %w", roastID, err)
		}

		switch arena.State(dao.State) {
		case arena.StateSettled:
			if settlementMatches(dao, settlement) {
				return nil
			}
			return fmt.Errorf("roast %d already settled with different values: %w", roastID, ErrSettlementConflict)
		case arena.StateCancelled:
			return fmt.Errorf("roast %d already cancelled: %w", roastID, ErrSettlementConflict)
		}

		_, err = tx.NewUpdate().
			Model((*RoastDao)(nil)).
			Set("state = ?", string(arena.StateSettled)).
			Set("num_winners = ?", settlement.NumWinners).
			Set("roaster_pool = ?", settlement.RoasterPool).
			Set("voter_pool = ?", settlement.VoterPool).
			Set("winner_voter_count = ?", settlement.WinnerVoterCount).
			Where("roast_id = ?", roastID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to settle roast %d: %w", roastID, err)
		}
		return nil
	})
}

func (s *pgStore) MarkCancelled(ctx context.Context, roastID int64) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		dao := new(RoastDao)
		err := tx.NewSelect().
			Model(dao).
			Column("state").
			Where("roast_id = ?", roastID).
			For("UPDATE").
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("cancel roast %d: %w", roastID, ErrRoastNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load roast %d for cancellation: %w", roastID, err)
		}

		switch arena.State(dao.State) {
		case arena.StateCancelled:
			return nil
		case arena.StateSettled:
			return fmt.Errorf("roast %d already settled: %w", roastID, ErrSettlementConflict)
		}

		_, err = tx.NewUpdate().
			Model((*RoastDao)(nil)).
			Set("state = ?", string(arena.StateCancelled)).
			Where("roast_id = ?", roastID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to cancel roast %d: %w", roastID, err)
		}
		return nil
	})
}

func settlementMatches(dao *RoastDao, s arena.Settlement) bool {
	return dao.NumWinners != nil && *dao.NumWinners == s.NumWinners &&
		dao.RoasterPool != nil && *dao.RoasterPool == s.RoasterPool &&
		dao.VoterPool != nil && *dao.VoterPool == s.VoterPool &&
		dao.WinnerVoterCount != nil && *dao.WinnerVoterCount == s.WinnerVoterCount
}

func (s *pgStore) GetCursor(ctx context.Context, name string) (uint64, error) {
	dao := new(SyncCursorDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("name = ?", name).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCursorNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get cursor %q: %w", name, err)
	}
	return uint64(dao.LastHeight), nil
}

func (s *pgStore) SetCursor(ctx context.Context, name string, height uint64) error {
	dao := &SyncCursorDao{
		Name:       name,
		LastHeight: int64(height),
	}
	_, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (name) DO UPDATE").
		Set("last_height = EXCLUDED.last_height").
		Set("updated_at = now()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set cursor %q to %d: %w", name, height, err)
	}
	return nil
}

func (s *pgStore) GetRoast(ctx context.Context, roastID int64) (*arena.Roast, error) {
	dao := new(RoastDao)
	err := s.db.NewSelect().
		Model(dao).
		ColumnExpr("ri.*").
		ColumnExpr("COALESCE(p.username, '') AS creator_username").
		Join("LEFT JOIN profiles AS p ON p.address = ri.creator").
		Where("ri.roast_id = ?", roastID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoastNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roast %d: %w", roastID, err)
	}
	return toRoast(dao), nil
}

func (s *pgStore) ListRecentRoasts(ctx context.Context, limit int) ([]*arena.Roast, error) {
	var daos []RoastDao
	err := s.db.NewSelect().
		Model(&daos).
		ColumnExpr("ri.*").
		ColumnExpr("COALESCE(p.username, '') AS creator_username").
		Join("LEFT JOIN profiles AS p ON p.address = ri.creator").
		OrderExpr("ri.roast_id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent roasts: %w", err)
	}
	roasts := make([]*arena.Roast, len(daos))
	for i := range daos {
		roasts[i] = toRoast(&daos[i])
	}
	return roasts, nil
}

func (s *pgStore) ListParticipantRoasts(ctx context.Context, address string) ([]*ParticipantRoast, error) {
	var daos []ParticipantRoastDao
	err := s.db.NewSelect().
		TableExpr("participant_index AS pi").
		ColumnExpr("pi.roast_id, ri.state, ri.open_until, ri.vote_until").
		ColumnExpr("ri.roast_stake, ri.vote_stake, ri.num_winners").
		Join("JOIN roast_index AS ri ON ri.roast_id = pi.roast_id").
		Where("pi.address = ?", address).
		OrderExpr("pi.roast_id DESC").
		Scan(ctx, &daos)
	if err != nil {
		return nil, fmt.Errorf("failed to list roasts for %s: %w", address, err)
	}
	rows := make([]*ParticipantRoast, len(daos))
	for i, dao := range daos {
		rows[i] = &ParticipantRoast{
			RoastID:    dao.RoastID,
			State:      arena.State(dao.State),
			OpenUntil:  dao.OpenUntil,
			VoteUntil:  dao.VoteUntil,
			RoastStake: dao.RoastStake,
			VoteStake:  dao.VoteStake,
			NumWinners: dao.NumWinners,
		}
	}
	return rows, nil
}
