package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/cakeshop/pkg/auth"
	"github.com/ghuser/cakeshop/pkg/errhttp"
	"github.com/ghuser/cakeshop/pkg/httpx"
	appsvcs "github.com/ghuser/cakeshop/services/orders/application/services"
	ordersdomain "github.com/ghuser/cakeshop/services/orders/domain"
	"github.com/ghuser/cakeshop/services/orders/domain/models"
)

// GetOrdersHandler handles order read endpoints.
type GetOrdersHandler struct {
	svc *appsvcs.Services
}

// NewGetOrdersHandler returns a GetOrdersHandler backed by the given services.
func NewGetOrdersHandler(svc *appsvcs.Services) *GetOrdersHandler {
	return &GetOrdersHandler{svc: svc}
}

// List returns the authenticated user's orders, newest first. The optional
// item_id query parameter narrows the list to orders of that catalog item.
//
//	@Summary		List orders
//	@Description	Lists the authenticated user's orders, optionally filtered by item
//	@Tags			orders
//	@Produce		json
//	@Param			item_id	query		string	false	"Catalog item ID filter"
//	@Success		200		{array}		OrderResponse
//	@Router			/orders [get]
func (h *GetOrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var orders []OrderResponse
	itemID := r.URL.Query().Get("item_id")

	found, err := h.list(r, userID, itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	orders = make([]OrderResponse, 0, len(found))
	for _, o := range found {
		orders = append(orders, toOrderResponse(o))
	}

	httpx.JSON(w, http.StatusOK, orders)
}

func (h *GetOrdersHandler) list(r *http.Request, userID, itemID string) ([]*models.Order, error) {
	if itemID != "" {
		return h.svc.Orders.ListOrdersForUserAndItem(r.Context(), userID, itemID)
	}
	return h.svc.Orders.ListOrdersForUser(r.Context(), userID)
}

// Get returns a single order by ID.
//
//	@Summary		Get order
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	OrderResponse
//	@Failure		404	{object}	map[string]string
//	@Router			/orders/{id} [get]
func (h *GetOrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.svc.Orders.GetOrder(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	// Orders are private to their owner.
	if order.UserID != userID {
		errhttp.WriteError(w, ordersdomain.ErrOrderNotFound)
		return
	}

	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}
