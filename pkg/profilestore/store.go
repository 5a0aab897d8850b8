// Package profilestore implements postgres persistence for profiles and
// roast content.
package profilestore

import (
	"context"
	"errors"

	"github.com/roastarena/backend/pkg/profile"
)

// ErrProfileNotFound is returned when no profile exists for an address.
var ErrProfileNotFound = errors.New("profile not found")

// Store is the persistence contract for off-chain profile data.
type Store interface {
	// UpsertProfile creates or replaces the profile for an address.
	UpsertProfile(ctx context.Context, p *profile.Profile) error
	GetProfile(ctx context.Context, address string) (*profile.Profile, error)

	// UpsertContent creates or replaces the (roast, author) text entry.
	UpsertContent(ctx context.Context, c *profile.RoastContent) error
	ListContent(ctx context.Context, roastID int64) ([]*profile.RoastContent, error)
}
