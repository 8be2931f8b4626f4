package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/cakeshop/pkg/errhttp"
	"github.com/ghuser/cakeshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/cakeshop/pkg/validator"
	appsvcs "github.com/ghuser/cakeshop/services/catalog/application/services"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	ID          string  `json:"id" validate:"required,min=1,max=64" example:"chocolate"`
	Name        string  `json:"name" validate:"required,min=1,max=255" example:"Chocolate Cake"`
	UnitPrice   float64 `json:"unit_price" validate:"required,gt=0" example:"1500.0"`
	Flavour     string  `json:"flavour" validate:"max=64" example:"Chocolate"`
	Description string  `json:"description" validate:"max=1024" example:"Rich chocolate cake"`
} // @name CreateItemRequest

// ItemResponse is the JSON shape of a catalog item.
type ItemResponse struct {
	ID          string    `json:"id"          example:"chocolate"`
	Name        string    `json:"name"        example:"Chocolate Cake"`
	UnitPrice   string    `json:"unit_price"  example:"1500"`
	Flavour     string    `json:"flavour"     example:"Chocolate"`
	Description string    `json:"description" example:"Rich chocolate cake"`
	CreatedAt   time.Time `json:"created_at"  example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new catalog item.
//
//	@Summary		Create catalog item
//	@Description	Adds a purchasable cake/flavour to the catalog
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		409		{object}	map[string]string
//	@Failure		422		{object}	map[string]string
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Catalog.Create(
		r.Context(),
		req.ID,
		req.Name,
		decimal.NewFromFloat(req.UnitPrice),
		req.Flavour,
		req.Description,
	)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, ItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		UnitPrice:   item.UnitPrice.String(),
		Flavour:     item.Flavour,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
	})
}
