package controllers

import (
	"net/http"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/bind"
	"github.com/hydroline/hydroline/pkg/response"
)

// OrderController handles checkout, order history and the per-item
// cancellation and fulfilment endpoints.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Create places a new order from the validated checkout payload.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req services.CreateOrderInput
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		errs["items"] = "The items field is required."
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Create(uid, req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, order)
}

// List returns the caller's order history.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	page, limit := pageParams(r)
	orders, pagination, err := c.orders.ListByUser(uid, page, limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Paginated(w, orders, pagination)
}

// Get returns one order; customers may only read their own.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	orderID, err := paramUint(r, "orderId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := c.orders.Get(uid, orderID, isAdmin(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, order)
}

type cancelItemRequest struct {
	Reason string `json:"reason" validate:"nullable,max=255"`
}

// CancelItem cancels one order item and refunds it when eligible.
func (c *OrderController) CancelItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	orderID, err := paramUint(r, "orderId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	itemID, err := paramUint(r, "itemId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var req cancelItemRequest
	if r.ContentLength > 0 {
		if _, err := bind.JSON(r, &req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	result, err := c.orders.CancelItem(uid, orderID, itemID, req.Reason, isAdmin(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.SuccessMessage(w, "Item cancelled", result)
}

// AdminList returns all orders, optionally filtered by ?status=.
func (c *OrderController) AdminList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	status := models.ItemStatus(r.URL.Query().Get("status"))

	orders, pagination, err := c.orders.ListAll(status, page, limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Paginated(w, orders, pagination)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateItemStatus moves an item through the fulfilment states (admin).
func (c *OrderController) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := paramUint(r, "orderId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	itemID, err := paramUint(r, "itemId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var req updateStatusRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.orders.UpdateItemStatus(orderID, itemID, models.ItemStatus(req.Status))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, item)
}
