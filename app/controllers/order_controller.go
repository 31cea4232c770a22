package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/app/services"
	"github.com/plantnet-dev/plantnet/pkg/bind"
	"github.com/plantnet-dev/plantnet/pkg/logger"
	"github.com/plantnet-dev/plantnet/pkg/response"
)

type OrderController struct {
	orders  *services.OrderService
	reports *services.ReportService
}

func NewOrderController(orders *services.OrderService, reports *services.ReportService) *OrderController {
	return &OrderController{orders: orders, reports: reports}
}

type orderInput struct {
	Customer struct {
		Name  string `json:"name"  validate:"nullable"`
		Email string `json:"email" validate:"required,email"`
	} `json:"customer"`
	Seller   string  `json:"seller"   validate:"required,email"`
	PlantID  string  `json:"plantId"  validate:"required"`
	Quantity int     `json:"quantity" validate:"required,integer,gt=0"`
	Price    float64 `json:"price"    validate:"required,numeric,gt=0"`
	Address  string  `json:"address"  validate:"nullable"`
	Status   string  `json:"status"   validate:"nullable"`
}

// Create places an order. The stock decrement arrives as a follow-up
// PATCH /plants/quantity/{id} from the client.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in orderInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.orders.Place(r.Context(), models.Order{
		Customer: models.CustomerRef{Name: in.Customer.Name, Email: in.Customer.Email},
		Seller:   in.Seller,
		PlantID:  in.PlantID,
		Quantity: in.Quantity,
		Price:    in.Price,
		Address:  in.Address,
		Status:   in.Status,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("orders: place", "error", err)
		response.InternalError(w)
		return
	}
	response.Created(w, map[string]interface{}{"insertedId": id})
}

// CustomerOrders lists the authed-side customer's orders with plant details.
func (c *OrderController) CustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.reports.CustomerOrders(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("orders: customer list", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, orders)
}

// SellerOrders lists orders placed against the given seller.
func (c *OrderController) SellerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.reports.SellerOrders(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("orders: seller list", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, orders)
}

// Cancel deletes an order unless it is already delivered, which answers with
// the plain-text 409 the storefront matches on.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	n, err := c.orders.Cancel(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, services.ErrOrderDelivered):
		response.Text(w, http.StatusConflict, "Can't cancel once the product is delivered!")
		return
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
		return
	case errors.Is(err, services.ErrInvalidID):
		response.Message(w, http.StatusBadRequest, "invalid order id")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("orders: cancel", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int64{"deletedCount": n})
}

type statusInput struct {
	Status string `json:"status" validate:"required,in=Pending,Processing,Delivered"`
}

// SetStatus is the seller's fulfilment update on one order.
func (c *OrderController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in statusInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	n, err := c.orders.SetStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	switch {
	case errors.Is(err, services.ErrInvalidID):
		response.Message(w, http.StatusBadRequest, "invalid order id")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("orders: set status", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int64{"modifiedCount": n})
}
