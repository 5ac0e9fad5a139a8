package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/logx"
)

// CourierHandler serves the courier availability directory. Admin only.
type CourierHandler struct {
	usecase courierUsecase
	logger  logx.Logger
}

// NewCourierHandler wires a courierUsecase into HTTP handlers.
func NewCourierHandler(logger logx.Logger, uc courierUsecase) *CourierHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CourierHandler{usecase: uc, logger: logger}
}

func (h *CourierHandler) admin(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	actor, ok := caller(h.logger, w, r)
	if !ok {
		return domain.Identity{}, false
	}
	if actor.Role != domain.RoleAdmin {
		writeError(h.logger, w, r, http.StatusForbidden, apperr.CodeUnauthorized, "admin only")
		return domain.Identity{}, false
	}
	return actor, true
}

// Upsert handles PUT /v1/couriers/{id}.
func (h *CourierHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.admin(w, r); !ok {
		return
	}
	var req courierRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c, err := h.usecase.UpsertCourier(r.Context(), domain.Courier{
		ID:     chi.URLParam(r, "id"),
		Name:   req.Name,
		Status: req.Status,
	})
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, courierToResponse(c))
}

// Deactivate handles POST /v1/couriers/{id}/deactivate: the courier is paused and every
// delivery they still hold is force-cancelled.
func (h *CourierHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.admin(w, r)
	if !ok {
		return
	}
	var req deactivateRequest
	if r.ContentLength != 0 {
		if ok := decodeJSON(h.logger, w, r, &req); !ok {
			return
		}
	}

	id := chi.URLParam(r, "id")
	cancelled, err := h.usecase.DeactivateCourier(r.Context(), id, actor, req.Reason)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	if cancelled == nil {
		cancelled = []string{}
	}
	writeJSON(h.logger, w, r, http.StatusOK, deactivateResponse{CourierID: id, Cancelled: cancelled})
}
