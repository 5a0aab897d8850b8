package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/roastarena/backend/pkg/app/errors"
	apphttp "github.com/roastarena/backend/pkg/app/http"
	"github.com/roastarena/backend/pkg/profile"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers profile endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/profile", apphttp.HandleError(h.upsertProfile))
	r.Get("/profile/{address}", apphttp.HandleError(h.getProfile))
	r.Post("/roast/{roastId}/content", apphttp.HandleError(h.submitContent))
	r.Get("/roast/{roastId}/content", apphttp.HandleError(h.listContent))
}

func (h *HTTP) upsertProfile(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req profile.UpsertProfileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}

	p, err := h.service.UpsertProfile(r.Context(), &req)
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, p)
}

func (h *HTTP) getProfile(w http.ResponseWriter, r *http.Request) error {
	p, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, p)
}

func (h *HTTP) submitContent(w http.ResponseWriter, r *http.Request) error {
	roastID, err := strconv.ParseInt(chi.URLParam(r, "roastId"), 10, 64)
	if err != nil {
		return apperrors.BadRequestError(err, "invalid roast id")
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req profile.SubmitContentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}
	req.RoastID = roastID

	c, err := h.service.SubmitContent(r.Context(), &req)
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, c)
}

func (h *HTTP) listContent(w http.ResponseWriter, r *http.Request) error {
	roastID, err := strconv.ParseInt(chi.URLParam(r, "roastId"), 10, 64)
	if err != nil {
		return apperrors.BadRequestError(err, "invalid roast id")
	}

	entries, err := h.service.ListContent(r.Context(), roastID)
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, entries)
}
