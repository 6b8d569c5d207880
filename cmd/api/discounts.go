package main

import (
	"net/http"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
)

type CartItemRequest struct {
	ProductID   string   `json:"product_id" validate:"required"`
	Name        string   `json:"name"`
	CategoryIDs []string `json:"category_ids"`
	Quantity    int      `json:"quantity" validate:"required,min=1"`
	UnitPrice   int64    `json:"unit_price" validate:"min=0"`
}

type ValidateDiscountRequest struct {
	Code  string            `json:"code" validate:"required"`
	Items []CartItemRequest `json:"items" validate:"required,min=1,dive"`
}

// validateDiscountHandler godoc
//
//	@Summary		Validate a discount code
//	@Description	Checks a discount code against the cart and returns the computed discount
//	@Tags			discounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ValidateDiscountRequest	true	"Cart and code"
//	@Success		200		{object}	domain.DiscountValidation
//	@Failure		400		{object}	map[string]string
//	@Router			/discounts/validate [post]
func (app *application) validateDiscountHandler(w http.ResponseWriter, r *http.Request) {
	var req ValidateDiscountRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items := toCartItems(req.Items)

	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	// a rejected code is still a 200: the result is the payload
	result := app.discountService.ValidateCode(r.Context(), req.Code, items, subtotal)

	if err := app.jsonRespone(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

func toCartItems(reqs []CartItemRequest) []domain.CartItem {
	items := make([]domain.CartItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, domain.CartItem{
			ProductID:   r.ProductID,
			Name:        r.Name,
			CategoryIDs: r.CategoryIDs,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
		})
	}
	return items
}
