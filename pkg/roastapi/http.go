package roastapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/roastarena/backend/pkg/app/errors"
	apphttp "github.com/roastarena/backend/pkg/app/http"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers roast read endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/roasts", apphttp.HandleError(h.listRoasts))
	r.Get("/roast/{roastId}", apphttp.HandleError(h.getRoast))
	r.Get("/profile/{address}/roasts", apphttp.HandleError(h.listParticipantRoasts))
}

func (h *HTTP) listRoasts(w http.ResponseWriter, r *http.Request) error {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.BadRequestError(err, "invalid limit")
		}
		limit = parsed
	}

	views, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, views)
}

func (h *HTTP) getRoast(w http.ResponseWriter, r *http.Request) error {
	roastID, err := strconv.ParseInt(chi.URLParam(r, "roastId"), 10, 64)
	if err != nil {
		return apperrors.BadRequestError(err, "invalid roast id")
	}

	view, err := h.service.GetRoast(r.Context(), roastID)
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, view)
}

func (h *HTTP) listParticipantRoasts(w http.ResponseWriter, r *http.Request) error {
	views, err := h.service.ListParticipantRoasts(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, views)
}
