package handlers

import (
	"net/http"

	"github.com/ghuser/cakeshop/pkg/auth"
	"github.com/ghuser/cakeshop/pkg/errhttp"
	"github.com/ghuser/cakeshop/pkg/httpx"
	appsvcs "github.com/ghuser/cakeshop/services/orders/application/services"
)

// DashboardResponse is the home-screen tracking summary. When the user has no
// orders yet, item_name and status carry the "Not Available" placeholder and
// latest_order is null.
type DashboardResponse struct {
	ItemName    string         `json:"item_name"    example:"Chocolate Cake"`
	Status      string         `json:"status"       example:"Out for Delivery"`
	LatestOrder *OrderResponse `json:"latest_order"`
} // @name DashboardResponse

// GetDashboardHandler handles GET /dashboard requests.
type GetDashboardHandler struct {
	svc *appsvcs.Services
}

// NewGetDashboardHandler returns a GetDashboardHandler backed by the given services.
func NewGetDashboardHandler(svc *appsvcs.Services) *GetDashboardHandler {
	return &GetDashboardHandler{svc: svc}
}

// Execute returns the authenticated user's order tracking summary.
//
//	@Summary		Order dashboard
//	@Description	Returns the latest order's name and status for the home screen
//	@Tags			orders
//	@Produce		json
//	@Success		200	{object}	DashboardResponse
//	@Router			/dashboard [get]
func (h *GetDashboardHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	summary, err := h.svc.Orders.Dashboard(r.Context(), userID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := DashboardResponse{
		ItemName: summary.DisplayName,
		Status:   summary.DisplayStatus,
	}
	if summary.LatestOrder != nil {
		latest := toOrderResponse(summary.LatestOrder)
		resp.LatestOrder = &latest
	}

	httpx.JSON(w, http.StatusOK, resp)
}
