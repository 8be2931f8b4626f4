package handlers

import (
	"net/http"

	"github.com/ghuser/cakeshop/pkg/auth"
	"github.com/ghuser/cakeshop/pkg/errhttp"
	"github.com/ghuser/cakeshop/pkg/httpx"
	appsvcs "github.com/ghuser/cakeshop/services/orders/application/services"
)

// GetLatestOrderHandler handles GET /orders/latest requests.
type GetLatestOrderHandler struct {
	svc *appsvcs.Services
}

// NewGetLatestOrderHandler returns a GetLatestOrderHandler backed by the given services.
func NewGetLatestOrderHandler(svc *appsvcs.Services) *GetLatestOrderHandler {
	return &GetLatestOrderHandler{svc: svc}
}

// Execute returns the authenticated user's most recent order.
//
//	@Summary		Latest order
//	@Description	Returns the user's most recently placed order
//	@Tags			orders
//	@Produce		json
//	@Success		200	{object}	OrderResponse
//	@Failure		404	{object}	map[string]string
//	@Router			/orders/latest [get]
func (h *GetLatestOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	order, err := h.svc.Orders.LatestOrderForUser(r.Context(), userID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}
