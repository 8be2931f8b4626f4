package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/cakeshop/pkg/auth"
	"github.com/ghuser/cakeshop/pkg/errhttp"
	"github.com/ghuser/cakeshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/cakeshop/pkg/validator"
	appsvcs "github.com/ghuser/cakeshop/services/orders/application/services"
	"github.com/ghuser/cakeshop/services/orders/domain/models"
)

// PlaceOrderRequest is the request body for POST /orders.
type PlaceOrderRequest struct {
	ItemID          string   `json:"item_id" validate:"required,min=1,max=64" example:"chocolate"`
	Quantity        int      `json:"quantity" validate:"required,gt=0" example:"2"`
	DeliveryAddress string   `json:"delivery_address" validate:"required,min=1,max=512" example:"12 Riverside Drive"`
	DeliveryFee     *float64 `json:"delivery_fee,omitempty" validate:"omitempty,gte=0" example:"200.0"`
} // @name PlaceOrderRequest

// OrderResponse is the JSON shape of an order.
type OrderResponse struct {
	ID              string    `json:"id"               example:"a2c8f0e4-7c1b-4b6e-9d3a-0f5e6a7b8c9d"`
	ItemID          string    `json:"item_id"          example:"chocolate"`
	ItemName        string    `json:"item_name"        example:"Chocolate Cake"`
	UnitPrice       string    `json:"unit_price"       example:"1500"`
	Quantity        int       `json:"quantity"         example:"2"`
	DeliveryAddress string    `json:"delivery_address" example:"12 Riverside Drive"`
	DeliveryFee     string    `json:"delivery_fee"     example:"200"`
	TotalPrice      string    `json:"total_price"      example:"3200"`
	Status          string    `json:"status"           example:"Pending"`
	CreatedAt       time.Time `json:"created_at"       example:"2024-01-15T10:30:00Z"`
} // @name OrderResponse

func toOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID.String(),
		ItemID:          o.ItemID,
		ItemName:        o.ItemName,
		UnitPrice:       o.UnitPrice.String(),
		Quantity:        o.Quantity,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryFee:     o.DeliveryFee.String(),
		TotalPrice:      o.TotalPrice().String(),
		Status:          o.Status.String(),
		CreatedAt:       o.CreatedAt,
	}
}

// PostOrderHandler handles POST /orders requests.
type PostOrderHandler struct {
	svc *appsvcs.Services
}

// NewPostOrderHandler returns a PostOrderHandler backed by the given services.
func NewPostOrderHandler(svc *appsvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute places an order for the authenticated user.
//
//	@Summary		Place order
//	@Description	Places an order for a catalog item, snapshotting its name and price
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PlaceOrderRequest	true	"Order placement request"
//	@Success		201		{object}	OrderResponse
//	@Failure		404		{object}	map[string]string
//	@Failure		422		{object}	map[string]string
//	@Router			/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[PlaceOrderRequest](w, r)
	if !ok {
		return
	}

	var fee *decimal.Decimal
	if req.DeliveryFee != nil {
		f := decimal.NewFromFloat(*req.DeliveryFee)
		fee = &f
	}

	order, err := h.svc.Orders.PlaceOrder(r.Context(), userID, req.ItemID, req.Quantity, req.DeliveryAddress, fee)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toOrderResponse(order))
}
