// Package roastapi serves the indexed roast data over HTTP. It reads
// what the synchronization engine projected, derives the live phase
// from timestamps at request time and renders stake amounts for
// display. Nothing here writes to the index.
package roastapi

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/roastarena/backend/pkg/app/errors"
	"github.com/roastarena/backend/pkg/arena"
	"github.com/roastarena/backend/pkg/arenadb"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100

	// nativeTokenDecimals converts wei amounts to whole-token display values.
	nativeTokenDecimals = 18
)

var ErrInvalidAddress = errors.New("invalid wallet address")

// SettlementView is the settled payout block of a roast response.
type SettlementView struct {
	NumWinners       int64  `json:"num_winners"`
	RoasterPool      string `json:"roaster_pool_wei"`
	RoasterPoolToken string `json:"roaster_pool"`
	VoterPool        string `json:"voter_pool_wei"`
	VoterPoolToken   string `json:"voter_pool"`
	WinnerVoterCount int64  `json:"winner_voter_count"`
}

// RoastView is one roast as served to clients. Wei amounts are decimal
// strings straight from the index; the token fields are the same values
// scaled for display.
type RoastView struct {
	RoastID         int64           `json:"roast_id"`
	Creator         string          `json:"creator"`
	CreatorUsername string          `json:"creator_username,omitempty"`
	RoastStake      string          `json:"roast_stake_wei"`
	RoastStakeToken string          `json:"roast_stake"`
	VoteStake       string          `json:"vote_stake_wei"`
	VoteStakeToken  string          `json:"vote_stake"`
	OpenUntil       int64           `json:"open_until"`
	VoteUntil       int64           `json:"vote_until"`
	State           arena.State     `json:"state"`
	Phase           arena.Phase     `json:"phase"`
	Settlement      *SettlementView `json:"settlement,omitempty"`
	TxHash          string          `json:"tx_hash"`
	BlockNumber     int64           `json:"block_number"`
}

// ParticipationView is one row of a wallet's roast history.
type ParticipationView struct {
	RoastID    int64       `json:"roast_id"`
	State      arena.State `json:"state"`
	Phase      arena.Phase `json:"phase"`
	OpenUntil  int64       `json:"open_until"`
	VoteUntil  int64       `json:"vote_until"`
	RoastStake string      `json:"roast_stake_wei"`
	VoteStake  string      `json:"vote_stake_wei"`
}

// Service defines the roast read surface.
type Service interface {
	ListRecent(ctx context.Context, limit int) ([]*RoastView, error)
	GetRoast(ctx context.Context, roastID int64) (*RoastView, error)
	ListParticipantRoasts(ctx context.Context, address string) ([]*ParticipationView, error)
}

type roastService struct {
	store  arenadb.ReadStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new roast read service
func NewService(store arenadb.ReadStore, logger *zap.Logger) Service {
	return &roastService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *roastService) ListRecent(ctx context.Context, limit int) ([]*RoastView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	roasts, err := s.store.ListRecentRoasts(ctx, limit)
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}

	now := s.now()
	views := make([]*RoastView, 0, len(roasts))
	for _, roast := range roasts {
		views = append(views, toRoastView(roast, now))
	}
	return views, nil
}

func (s *roastService) GetRoast(ctx context.Context, roastID int64) (*RoastView, error) {
	if roastID <= 0 {
		return nil, apperrors.BadRequestError(nil, "roast id must be positive")
	}

	roast, err := s.store.GetRoast(ctx, roastID)
	if err != nil {
		if errors.Is(err, arenadb.ErrRoastNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "roast not found")
		}
		return nil, apperrors.GeneralError(err)
	}
	return toRoastView(roast, s.now()), nil
}

func (s *roastService) ListParticipantRoasts(ctx context.Context, address string) ([]*ParticipationView, error) {
	if !common.IsHexAddress(address) {
		return nil, apperrors.BadRequestError(ErrInvalidAddress, "invalid wallet address")
	}

	rows, err := s.store.ListParticipantRoasts(ctx, arena.NormalizeAddressString(address))
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}

	now := s.now()
	views := make([]*ParticipationView, 0, len(rows))
	for _, row := range rows {
		roast := &arena.Roast{
			State:     row.State,
			OpenUntil: row.OpenUntil,
			VoteUntil: row.VoteUntil,
		}
		views = append(views, &ParticipationView{
			RoastID:    row.RoastID,
			State:      row.State,
			Phase:      roast.PhaseAt(now),
			OpenUntil:  row.OpenUntil,
			VoteUntil:  row.VoteUntil,
			RoastStake: row.RoastStake,
			VoteStake:  row.VoteStake,
		})
	}
	return views, nil
}

func toRoastView(roast *arena.Roast, now time.Time) *RoastView {
	view := &RoastView{
		RoastID:         roast.RoastID,
		Creator:         roast.Creator,
		CreatorUsername: roast.CreatorUsername,
		RoastStake:      roast.RoastStake,
		RoastStakeToken: weiToToken(roast.RoastStake),
		VoteStake:       roast.VoteStake,
		VoteStakeToken:  weiToToken(roast.VoteStake),
		OpenUntil:       roast.OpenUntil,
		VoteUntil:       roast.VoteUntil,
		State:           roast.State,
		Phase:           roast.PhaseAt(now),
		TxHash:          roast.TxHash,
		BlockNumber:     roast.BlockNumber,
	}

	if roast.State == arena.StateSettled && roast.NumWinners != nil {
		view.Settlement = &SettlementView{
			NumWinners:       *roast.NumWinners,
			RoasterPool:      *roast.RoasterPool,
			RoasterPoolToken: weiToToken(*roast.RoasterPool),
			VoterPool:        *roast.VoterPool,
			VoterPoolToken:   weiToToken(*roast.VoterPool),
			WinnerVoterCount: *roast.WinnerVoterCount,
		}
	}
	return view
}

// weiToToken scales a wei decimal string for display. An unparseable
// value renders as "0" rather than failing the whole response.
func weiToToken(wei string) string {
	n, ok := new(big.Int).SetString(wei, 10)
	if !ok {
		return "0"
	}
	return decimal.NewFromBigInt(n, -nativeTokenDecimals).String()
}
