package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cakeshop/pkg/errhttp"
	"github.com/ghuser/cakeshop/pkg/httpx"
	appsvcs "github.com/ghuser/cakeshop/services/catalog/application/services"
	"github.com/ghuser/cakeshop/services/catalog/domain/models"
)

// GetItemsHandler handles GET /items and GET /items/{id}.
type GetItemsHandler struct {
	svc *appsvcs.Services
}

// NewGetItemsHandler returns a GetItemsHandler backed by the given services.
func NewGetItemsHandler(svc *appsvcs.Services) *GetItemsHandler {
	return &GetItemsHandler{svc: svc}
}

// List returns catalog items, optionally filtered by flavour.
//
//	@Summary	List catalog items
//	@Tags		catalog
//	@Produce	json
//	@Param		flavour	query		string	false	"exact flavour tag"
//	@Success	200		{array}		ItemResponse
//	@Router		/items [get]
func (h *GetItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Catalog.ListItems(r.Context(), r.URL.Query().Get("flavour"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, ItemResponse{
			ID:          item.ID.String(),
			Name:        item.Name,
			UnitPrice:   item.UnitPrice.String(),
			Flavour:     item.Flavour,
			Description: item.Description,
			CreatedAt:   item.CreatedAt,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Get returns a single catalog item by slug.
//
//	@Summary	Get catalog item
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		string	true	"item slug"
//	@Success	200	{object}	ItemResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/items/{id} [get]
func (h *GetItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Catalog.GetItem(r.Context(), models.ItemID(chi.URLParam(r, "id")))
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
