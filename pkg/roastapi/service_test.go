package roastapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/roastarena/backend/pkg/app/errors"
	"github.com/roastarena/backend/pkg/arena"
	"github.com/roastarena/backend/pkg/arenadb"
)

type mockReadStore struct {
	getRoastFn              func(ctx context.Context, roastID int64) (*arena.Roast, error)
	listRecentRoastsFn      func(ctx context.Context, limit int) ([]*arena.Roast, error)
	listParticipantRoastsFn func(ctx context.Context, address string) ([]*arenadb.ParticipantRoast, error)
}

func (m *mockReadStore) GetRoast(ctx context.Context, roastID int64) (*arena.Roast, error) {
	return m.getRoastFn(ctx, roastID)
}

func (m *mockReadStore) ListRecentRoasts(ctx context.Context, limit int) ([]*arena.Roast, error) {
	return m.listRecentRoastsFn(ctx, limit)
}

func (m *mockReadStore) ListParticipantRoasts(ctx context.Context, address string) ([]*arenadb.ParticipantRoast, error) {
	return m.listParticipantRoastsFn(ctx, address)
}

func fixedClock(ts int64) func() time.Time {
	return func() time.Time { return time.Unix(ts, 0) }
}

func openRoast(id int64) *arena.Roast {
	return &arena.Roast{
		RoastID:    id,
		Creator:    "0xabcd00000000000000000000000000000000beef",
		RoastStake: "500000000000000000",
		VoteStake:  "25000000000000000",
		OpenUntil:  1_000_100,
		VoteUntil:  1_000_200,
		State:      arena.StateOpen,
	}
}

func TestGetRoast_PhaseDerivedAtReadTime(t *testing.T) {
	store := &mockReadStore{
		getRoastFn: func(_ context.Context, roastID int64) (*arena.Roast, error) {
			return openRoast(roastID), nil
		},
	}
	svc := NewService(store, zap.NewNop()).(*roastService)

	tests := []struct {
		now   int64
		phase arena.Phase
	}{
		{1_000_050, arena.PhaseRoasting},
		{1_000_150, arena.PhaseVoting},
		{1_000_250, arena.PhaseEnded},
	}
	for _, tt := range tests {
		svc.now = fixedClock(tt.now)
		view, err := svc.GetRoast(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, tt.phase, view.Phase)
	}
}

func TestGetRoast_SettledRoastHasSettlement(t *testing.T) {
	numWinners := int64(2)
	roasterPool := "900000000000000000"
	voterPool := "100000000000000000"
	winnerVoters := int64(5)

	store := &mockReadStore{
		getRoastFn: func(_ context.Context, roastID int64) (*arena.Roast, error) {
			roast := openRoast(roastID)
			roast.State = arena.StateSettled
			roast.NumWinners = &numWinners
			roast.RoasterPool = &roasterPool
			roast.VoterPool = &voterPool
			roast.WinnerVoterCount = &winnerVoters
			return roast, nil
		},
	}
	svc := NewService(store, zap.NewNop()).(*roastService)
	svc.now = fixedClock(1_000_050)

	view, err := svc.GetRoast(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, arena.PhaseEnded, view.Phase, "terminal state beats timestamps")
	require.NotNil(t, view.Settlement)
	assert.Equal(t, "900000000000000000", view.Settlement.RoasterPool)
	assert.Equal(t, "0.9", view.Settlement.RoasterPoolToken)
	assert.Equal(t, int64(2), view.Settlement.NumWinners)
}

func TestGetRoast_NotFound(t *testing.T) {
	store := &mockReadStore{
		getRoastFn: func(context.Context, int64) (*arena.Roast, error) {
			return nil, arenadb.ErrRoastNotFound
		},
	}
	svc := NewService(store, zap.NewNop())

	_, err := svc.GetRoast(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CategoryResourceNotFound))
}

func TestListRecent_LimitDefaultsAndCaps(t *testing.T) {
	var gotLimit int
	store := &mockReadStore{
		listRecentRoastsFn: func(_ context.Context, limit int) ([]*arena.Roast, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := NewService(store, zap.NewNop())
	ctx := context.Background()

	_, err := svc.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultListLimit, gotLimit)

	_, err = svc.ListRecent(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, gotLimit)

	_, err = svc.ListRecent(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, gotLimit)
}

func TestListParticipantRoasts(t *testing.T) {
	var gotAddress string
	store := &mockReadStore{
		listParticipantRoastsFn: func(_ context.Context, address string) ([]*arenadb.ParticipantRoast, error) {
			gotAddress = address
			return []*arenadb.ParticipantRoast{
				{RoastID: 7, State: "OPEN", OpenUntil: 1_000_100, VoteUntil: 1_000_200, RoastStake: "100", VoteStake: "10"},
			}, nil
		},
	}
	svc := NewService(store, zap.NewNop()).(*roastService)
	svc.now = fixedClock(1_000_150)

	views, err := svc.ListParticipantRoasts(context.Background(), "0xAbCd00000000000000000000000000000000BeEf")
	require.NoError(t, err)

	assert.Equal(t, "0xabcd00000000000000000000000000000000beef", gotAddress)
	require.Len(t, views, 1)
	assert.Equal(t, arena.PhaseVoting, views[0].Phase)
}

func TestListParticipantRoasts_InvalidAddress(t *testing.T) {
	svc := NewService(&mockReadStore{}, zap.NewNop())
	_, err := svc.ListParticipantRoasts(context.Background(), "zzz")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
}

func TestWeiToToken(t *testing.T) {
	assert.Equal(t, "1", weiToToken("1000000000000000000"))
	assert.Equal(t, "0.5", weiToToken("500000000000000000"))
	assert.Equal(t, "123456789.012345678901234567", weiToToken("123456789012345678901234567"))
	assert.Equal(t, "0", weiToToken("garbage"))
}
