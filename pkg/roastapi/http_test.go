package roastapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roastarena/backend/pkg/arena"
	"github.com/roastarena/backend/pkg/arenadb"
)

func newTestRouter(store arenadb.ReadStore) *chi.Mux {
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(store, zap.NewNop()), zap.NewNop())
	return r
}

func TestHTTP_GetRoast(t *testing.T) {
	store := &mockReadStore{
		getRoastFn: func(_ context.Context, roastID int64) (*arena.Roast, error) {
			return openRoast(roastID), nil
		},
	}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/roast/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var view RoastView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, int64(7), view.RoastID)
	assert.Equal(t, "500000000000000000", view.RoastStake)
	assert.Equal(t, "0.5", view.RoastStakeToken)
}

func TestHTTP_GetRoastNotFound(t *testing.T) {
	store := &mockReadStore{
		getRoastFn: func(context.Context, int64) (*arena.Roast, error) {
			return nil, arenadb.ErrRoastNotFound
		},
	}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/roast/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTP_GetRoastBadID(t *testing.T) {
	router := newTestRouter(&mockReadStore{})

	req := httptest.NewRequest(http.MethodGet, "/roast/not-a-number", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTP_ListRoasts(t *testing.T) {
	store := &mockReadStore{
		listRecentRoastsFn: func(_ context.Context, limit int) ([]*arena.Roast, error) {
			return []*arena.Roast{openRoast(2), openRoast(1)}, nil
		},
	}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/roasts?limit=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var views []RoastView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, int64(2), views[0].RoastID)
}

func TestHTTP_ListRoastsBadLimit(t *testing.T) {
	router := newTestRouter(&mockReadStore{})

	req := httptest.NewRequest(http.MethodGet, "/roasts?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTP_ParticipantRoastsInvalidAddress(t *testing.T) {
	router := newTestRouter(&mockReadStore{})

	req := httptest.NewRequest(http.MethodGet, "/profile/nope/roasts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
