package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ghuser/cakeshop/pkg/errhttp"
	"github.com/ghuser/cakeshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/cakeshop/pkg/validator"
	appsvcs "github.com/ghuser/cakeshop/services/catalog/application/services"
	"github.com/ghuser/cakeshop/services/catalog/domain/models"
)

// UpdateItemRequest is the request body for PUT /items/{id}. The slug in the
// path is immutable; the body replaces the remaining fields.
type UpdateItemRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255" example:"Chocolate Cake"`
	UnitPrice   float64 `json:"unit_price" validate:"required,gt=0" example:"1600.0"`
	Flavour     string  `json:"flavour" validate:"max=64" example:"Chocolate"`
	Description string  `json:"description" validate:"max=1024" example:"Rich chocolate cake"`
} // @name UpdateItemRequest

// PutItemHandler handles PUT /items/{id} requests.
type PutItemHandler struct {
	svc *appsvcs.Services
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// Execute replaces an existing catalog item's editable fields. Existing orders
// keep their name and price snapshots.
//
//	@Summary		Update catalog item
//	@Description	Applies administrator edits to a catalog item
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"item slug"
//	@Param			request	body		UpdateItemRequest	true	"Item update request"
//	@Success		200		{object}	ItemResponse
//	@Failure		404		{object}	map[string]string
//	@Failure		422		{object}	map[string]string
//	@Router			/items/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Catalog.UpdateItem(
		r.Context(),
		models.ItemID(chi.URLParam(r, "id")),
		req.Name,
		decimal.NewFromFloat(req.UnitPrice),
		req.Flavour,
		req.Description,
	)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		UnitPrice:   item.UnitPrice.String(),
		Flavour:     item.Flavour,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
	})
}
