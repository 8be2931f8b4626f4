package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/cakeshop/pkg/errhttp"
	"github.com/ghuser/cakeshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/cakeshop/pkg/validator"
	appsvcs "github.com/ghuser/cakeshop/services/orders/application/services"
	"github.com/ghuser/cakeshop/services/orders/domain/models"
)

// UpdateStatusRequest is the request body for PATCH /orders/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required" example:"Out for Delivery"`
} // @name UpdateStatusRequest

// PatchStatusHandler handles order status transitions.
type PatchStatusHandler struct {
	svc *appsvcs.Services
}

// NewPatchStatusHandler returns a PatchStatusHandler backed by the given services.
func NewPatchStatusHandler(svc *appsvcs.Services) *PatchStatusHandler {
	return &PatchStatusHandler{svc: svc}
}

// Execute moves an order along its delivery lifecycle.
//
//	@Summary		Update order status
//	@Description	Applies a lifecycle transition (Pending → Out for Delivery → Delivered, or Cancelled)
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Order ID"
//	@Param			request	body		UpdateStatusRequest	true	"Target status"
//	@Success		200		{object}	OrderResponse
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/orders/{id}/status [patch]
func (h *PatchStatusHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateStatusRequest](w, r)
	if !ok {
		return
	}

	next, err := models.ParseStatus(req.Status)
	if err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	order, err := h.svc.Orders.AdvanceStatus(r.Context(), id, next)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}
