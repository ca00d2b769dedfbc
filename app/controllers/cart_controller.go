package controllers

import (
	"net/http"

	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/bind"
	"github.com/hydroline/hydroline/pkg/response"
)

// CartController manages the caller's cart.
type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// Get returns the caller's cart with product details.
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	cart, err := c.cart.Get(uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, cart)
}

type addToCartRequest struct {
	Items []services.CartLineInput `json:"items" validate:"required"`
}

// Add appends items to the cart; any product already present rejects the
// whole request.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req addToCartRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.cart.Add(uid, req.Items)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, cart)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// UpdateItem sets a cart line's quantity.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	itemID, err := paramUint(r, "itemId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var req updateQuantityRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.cart.UpdateQuantity(uid, itemID, req.Quantity)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, cart)
}

// DeleteItem removes one cart line.
func (c *CartController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	itemID, err := paramUint(r, "itemId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	cart, err := c.cart.Remove(uid, itemID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, cart)
}

// Clear empties the caller's cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	if err := c.cart.Clear(uid); err != nil {
		respondErr(w, r, err)
		return
	}
	response.SuccessMessage(w, "Cart cleared", nil)
}
