package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"service-tracking/internal/apperr"
	"service-tracking/internal/logx"
)

// FeeHandler serves fee quotes and the zone table.
type FeeHandler struct {
	usecase feeUsecase
	logger  logx.Logger
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(logger logx.Logger, uc feeUsecase) *FeeHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &FeeHandler{usecase: uc, logger: logger}
}

// ByDistance handles GET /v1/fees?distance_km=.
// @Summary Стоимость доставки по расстоянию
// @Tags fees
// @Produce json
// @Param distance_km query number true "distance in km"
// @Success 200 {object} quoteResponse
// @Failure 400 {object} ErrorResponse "invalid distance"
// @Failure 422 {object} ErrorResponse "out of delivery range"
// @Router /v1/fees [get]
func (h *FeeHandler) ByDistance(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("distance_km"))
	km, err := strconv.ParseFloat(raw, 64)
	if raw == "" || err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, apperr.CodeInvalid, "invalid distance_km")
		return
	}

	q, err := h.usecase.QuoteDistance(km)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, quoteToResponse(q))
}

// Quote handles POST /v1/fees/quote.
// @Summary Стоимость доставки между двумя точками
// @Tags fees
// @Accept json
// @Produce json
// @Param request body quoteRequest true "pickup and dropoff"
// @Success 200 {object} quoteResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 422 {object} ErrorResponse "out of delivery range"
// @Router /v1/fees/quote [post]
func (h *FeeHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	q, err := h.usecase.Quote(req.Pickup, req.Dropoff)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, quoteToResponse(q))
}

// Zones handles GET /v1/zones.
func (h *FeeHandler) Zones(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, zonesResponse{Zones: h.usecase.Zones()})
}

// ReplaceZones handles PUT /v1/zones. Only admins; the table is validated before the swap.
func (h *FeeHandler) ReplaceZones(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	var req zonesRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.usecase.ReplaceZones(r.Context(), req.Zones, actor); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, zonesResponse{Zones: h.usecase.Zones()})
}
