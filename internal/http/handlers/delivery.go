package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/lifecycle"
	"service-tracking/internal/logx"
)

// DeliveryHandler handles HTTP requests for delivery resources.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// Create handles POST /v1/deliveries.
// @Summary Создать доставку
// @Description Создаёт доставку в статусе pending; повтор с тем же orderId возвращает существующую
// @Tags deliveries
// @Accept json
// @Produce json
// @Param request body createDeliveryRequest true "Create delivery payload"
// @Success 201 {object} deliveryDTO
// @Success 200 {object} deliveryDTO "already exists"
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 403 {object} ErrorResponse "forbidden"
// @Failure 422 {object} ErrorResponse "out of delivery range"
// @Router /v1/deliveries [post]
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	var req createDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	// магазин создаёт доставки только для себя
	switch {
	case actor.Role == domain.RoleAdmin:
	case actor.Role == domain.RoleShopkeeper && actor.StoreID != "" && actor.StoreID == strings.TrimSpace(req.StoreID):
	default:
		writeError(h.logger, w, r, http.StatusForbidden, apperr.CodeUnauthorized, "not allowed to create deliveries for this store")
		return
	}

	d, created, err := h.usecase.CreateDelivery(r.Context(), req.toModel())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/v1/deliveries/"+d.ID)
	}
	writeJSON(h.logger, w, r, status, deliveryToResponse(d))
}

// Get handles GET /v1/deliveries/{id}.
// @Summary Получить доставку
// @Tags deliveries
// @Produce json
// @Param id path string true "delivery id"
// @Success 200 {object} deliveryDTO
// @Failure 403 {object} ErrorResponse "forbidden"
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Router /v1/deliveries/{id} [get]
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	d, err := h.usecase.GetForViewer(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
}

// Assign handles POST /v1/deliveries/{id}/assign.
// @Summary Назначить курьера
// @Description Курьер принимает заказ сам или админ назначает; стоимость считает сервер
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path string true "delivery id"
// @Param request body assignRequest true "Assign payload"
// @Success 200 {object} deliveryDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 403 {object} ErrorResponse "forbidden"
// @Failure 404 {object} ErrorResponse "delivery or courier not found"
// @Failure 409 {object} ErrorResponse "already assigned or courier unavailable"
// @Router /v1/deliveries/{id}/assign [post]
func (h *DeliveryHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	var req assignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.Assign(r.Context(), chi.URLParam(r, "id"), req.CourierID, actor)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
}

// ChangeStatus handles POST /v1/deliveries/{id}/status.
// @Summary Сменить статус доставки
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path string true "delivery id"
// @Param request body statusRequest true "Status payload"
// @Success 200 {object} statusResponse
// @Failure 403 {object} ErrorResponse "forbidden"
// @Failure 409 {object} ErrorResponse "invalid transition"
// @Router /v1/deliveries/{id}/status [post]
func (h *DeliveryHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	var req statusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, changed, err := h.usecase.Transition(r.Context(), chi.URLParam(r, "id"), lifecycle.Request{
		To:            domain.DeliveryStatus(strings.ToLower(strings.TrimSpace(string(req.Status)))),
		Actor:         actor,
		Description:   req.Description,
		AdminOverride: req.AdminOverride,
	})
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statusResponse{Delivery: deliveryToResponse(d), Changed: changed})
}
