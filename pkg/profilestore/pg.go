package profilestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/roastarena/backend/pkg/profile"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a postgres-backed profile store.
func NewStore(db *bun.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) UpsertProfile(ctx context.Context, p *profile.Profile) error {
	dao := toProfileDao(p)
	_, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (address) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("avatar_url = EXCLUDED.avatar_url").
		Set("bio = EXCLUDED.bio").
		Set("updated_at = now()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", p.Address, err)
	}
	return nil
}

func (s *pgStore) GetProfile(ctx context.Context, address string) (*profile.Profile, error) {
	dao := new(ProfileDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("address = ?", address).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", address, err)
	}
	return toProfile(dao), nil
}

func (s *pgStore) UpsertContent(ctx context.Context, c *profile.RoastContent) error {
	dao := toContentDao(c)
	_, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (roast_id, author) DO UPDATE").
		Set("content = EXCLUDED.content").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert content for roast %d: %w", c.RoastID, err)
	}
	return nil
}

func (s *pgStore) ListContent(ctx context.Context, roastID int64) ([]*profile.RoastContent, error) {
	var daos []*RoastContentDao
	err := s.db.NewSelect().
		Model(&daos).
		ColumnExpr("rc.*").
		ColumnExpr("COALESCE(p.username, '') AS author_username").
		Join("LEFT JOIN profiles AS p ON p.address = rc.author").
		Where("rc.roast_id = ?", roastID).
		Order("rc.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list content for roast %d: %w", roastID, err)
	}

	out := make([]*profile.RoastContent, 0, len(daos))
	for _, dao := range daos {
		out = append(out, toContent(dao))
	}
	return out, nil
}
