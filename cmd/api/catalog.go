package main

import (
	"net/http"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/catalog"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
)

// CategoryView is a category node with availability evaluated against the
// request time.
type CategoryView struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Level         int                  `json:"level"`
	SortOrder     int                  `json:"sort_order"`
	Availability  catalog.Availability `json:"availability"`
	Subcategories []CategoryView       `json:"subcategories,omitempty"`
}

// getLocationsHandler godoc
//
//	@Summary		List locations
//	@Description	Lists the shop locations known to the commerce platform
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		domain.Location
//	@Failure		503	{object}	map[string]string
//	@Router			/locations [get]
func (app *application) getLocationsHandler(w http.ResponseWriter, r *http.Request) {
	locations, err := app.catalogService.GetLocations(r.Context())
	if err != nil {
		app.serviceUnavailableResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, locations); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCategoriesHandler godoc
//
//	@Summary		Get category tree
//	@Description	Returns the category hierarchy with availability evaluated at request time
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		CategoryView
//	@Failure		503	{object}	map[string]string
//	@Router			/categories [get]
func (app *application) getCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	tree, err := app.catalogService.GetCategories(r.Context())
	if err != nil {
		app.serviceUnavailableResponse(w, r, err)
		return
	}

	now := time.Now()
	views := make([]CategoryView, 0, len(tree))
	for _, root := range tree {
		views = append(views, buildCategoryView(root, now))
	}

	if err := app.jsonRespone(w, http.StatusOK, views); err != nil {
		app.internalServerError(w, r, err)
	}
}

func buildCategoryView(node *domain.Category, now time.Time) CategoryView {
	view := CategoryView{
		ID:           node.ID,
		Name:         node.Name,
		Level:        node.Level,
		SortOrder:    node.SortOrder,
		Availability: catalog.EvaluateAvailability(*node, now),
	}

	for _, child := range node.Subcategories {
		view.Subcategories = append(view.Subcategories, buildCategoryView(child, now))
	}

	return view
}

// getProductsHandler godoc
//
//	@Summary		List products
//	@Description	Lists normalized products, optionally filtered by category
//	@Tags			catalog
//	@Produce		json
//	@Param			category	query		string	false	"Category ID"
//	@Success		200			{array}		domain.Product
//	@Failure		503			{object}	map[string]string
//	@Router			/products [get]
func (app *application) getProductsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		products []domain.Product
		err      error
	)

	if categoryID := r.URL.Query().Get("category"); categoryID != "" {
		products, err = app.catalogService.GetProductsByCategory(r.Context(), categoryID)
	} else {
		products, err = app.catalogService.GetProducts(r.Context())
	}
	if err != nil {
		app.serviceUnavailableResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}
