// Package service implements the profile and roast-content business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	apperrors "github.com/roastarena/backend/pkg/app/errors"
	"github.com/roastarena/backend/pkg/arena"
	"github.com/roastarena/backend/pkg/profile"
	"github.com/roastarena/backend/pkg/profilestore"
)

// Field limits enforced before anything reaches the database. These
// match the column widths in the profiles and roast_content tables.
const (
	maxUsernameLength  = 32
	maxAvatarURLLength = 200
	maxBioLength       = 160
	maxContentLength   = 500
)

var (
	ErrInvalidAddress  = errors.New("invalid wallet address")
	ErrUsernameMissing = errors.New("username is required")
)

// Service defines the profile business logic surface.
type Service interface {
	UpsertProfile(ctx context.Context, req *profile.UpsertProfileRequest) (*profile.Profile, error)
	GetProfile(ctx context.Context, address string) (*profile.Profile, error)
	SubmitContent(ctx context.Context, req *profile.SubmitContentRequest) (*profile.RoastContent, error)
	ListContent(ctx context.Context, roastID int64) ([]*profile.RoastContent, error)
}

type profileService struct {
	store  profilestore.Store
	logger *zap.Logger
}

// NewService creates a new profile service
func NewService(store profilestore.Store, logger *zap.Logger) Service {
	return &profileService{
		store:  store,
		logger: logger,
	}
}

func (s *profileService) UpsertProfile(ctx context.Context, req *profile.UpsertProfileRequest) (*profile.Profile, error) {
	if !common.IsHexAddress(req.Address) {
		return nil, apperrors.BadRequestError(ErrInvalidAddress, "invalid wallet address")
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.BadRequestError(ErrUsernameMissing, "username is required")
	}
	if len(username) > maxUsernameLength {
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("username exceeds %d characters", maxUsernameLength))
	}
	if len(req.AvatarURL) > maxAvatarURLLength {
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("avatar_url exceeds %d characters", maxAvatarURLLength))
	}
	if len(req.Bio) > maxBioLength {
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("bio exceeds %d characters", maxBioLength))
	}

	p := &profile.Profile{
		Address:   arena.NormalizeAddressString(req.Address),
		Username:  username,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	}
	if err := s.store.UpsertProfile(ctx, p); err != nil {
		return nil, apperrors.GeneralError(err)
	}

	s.logger.Info("profile upserted", zap.String("address", p.Address))
	return p, nil
}

func (s *profileService) GetProfile(ctx context.Context, address string) (*profile.Profile, error) {
	if !common.IsHexAddress(address) {
		return nil, apperrors.BadRequestError(ErrInvalidAddress, "invalid wallet address")
	}

	normalized := arena.NormalizeAddressString(address)
	p, err := s.store.GetProfile(ctx, normalized)
	if err != nil {
		if errors.Is(err, profilestore.ErrProfileNotFound) {
			// Every wallet has a profile; an address that never saved
			// one gets the empty default rather than a 404.
			return &profile.Profile{Address: normalized}, nil
		}
		return nil, apperrors.GeneralError(err)
	}
	return p, nil
}

func (s *profileService) SubmitContent(ctx context.Context, req *profile.SubmitContentRequest) (*profile.RoastContent, error) {
	if req.RoastID <= 0 {
		return nil, apperrors.BadRequestError(nil, "roast_id must be positive")
	}
	if !common.IsHexAddress(req.Author) {
		return nil, apperrors.BadRequestError(ErrInvalidAddress, "invalid wallet address")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.BadRequestError(nil, "content is required")
	}
	if len(content) > maxContentLength {
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("content exceeds %d characters", maxContentLength))
	}

	c := &profile.RoastContent{
		RoastID: req.RoastID,
		Author:  arena.NormalizeAddressString(req.Author),
		Content: content,
	}
	if err := s.store.UpsertContent(ctx, c); err != nil {
		return nil, apperrors.GeneralError(err)
	}

	s.logger.Info("roast content submitted",
		zap.Int64("roast_id", c.RoastID),
		zap.String("author", c.Author))
	return c, nil
}

func (s *profileService) ListContent(ctx context.Context, roastID int64) ([]*profile.RoastContent, error) {
	if roastID <= 0 {
		return nil, apperrors.BadRequestError(nil, "roast_id must be positive")
	}
	entries, err := s.store.ListContent(ctx, roastID)
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}
	return entries, nil
}
