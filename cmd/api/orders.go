package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/service"
	"github.com/go-chi/chi"
)

type CreateOrderRequest struct {
	LocationID   string            `json:"location_id" validate:"required"`
	Items        []CartItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountCode string            `json:"discount_code"`
	RedirectURL  string            `json:"redirect_url" validate:"omitempty,url"`
}

type CreatePaymentRequest struct {
	SourceID string `json:"source_id" validate:"required"`
}

// createOrderHandler godoc
//
//	@Summary		Create an order
//	@Description	Places an order with the commerce platform and returns a hosted checkout link
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Order request"
//	@Success		201		{object}	domain.OrderRecord
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	record, err := app.orderService.CreateOrder(r.Context(), service.CreateOrderInput{
		LocationID:   req.LocationID,
		Items:        toCartItems(req.Items),
		DiscountCode: req.DiscountCode,
		RedirectURL:  req.RedirectURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidDiscount) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, record); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOrdersHandler godoc
//
//	@Summary		List recent orders
//	@Description	Lists the most recent order records, newest first
//	@Tags			orders
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum records to return (default 20, max 100)"
//	@Success		200		{array}		domain.OrderRecord
//	@Failure		500		{object}	map[string]string
//	@Router			/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := app.orderService.ListOrders(r.Context(), limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, records); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHandler godoc
//
//	@Summary		Get an order
//	@Description	Returns the local record for an order by its platform order id
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Platform order ID"
//	@Success		200			{object}	domain.OrderRecord
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	record, err := app.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, record); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createPaymentHandler godoc
//
//	@Summary		Pay for an order
//	@Description	Charges an order through the commerce platform
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string					true	"Platform order ID"
//	@Param			request		body		CreatePaymentRequest	true	"Payment source"
//	@Success		200			{object}	domain.OrderRecord
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/orders/{order_id}/payments [post]
func (app *application) createPaymentHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req CreatePaymentRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	record, err := app.orderService.RecordPayment(r.Context(), orderID, req.SourceID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, record); err != nil {
		app.internalServerError(w, r, err)
	}
}
