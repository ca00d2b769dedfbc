package controllers

import (
	"net/http"

	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/bind"
	"github.com/hydroline/hydroline/pkg/response"
)

// PaymentController fronts the payment gateway: checkout order creation and
// callback signature verification.
type PaymentController struct {
	orders *services.OrderService
}

func NewPaymentController(orders *services.OrderService) *PaymentController {
	return &PaymentController{orders: orders}
}

type createGatewayOrderRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"` // paise
	Currency string `json:"currency" validate:"nullable,in=INR,USD"`
}

// CreateGatewayOrder registers a checkout amount with the gateway and
// returns the ids the checkout widget needs.
func (c *PaymentController) CreateGatewayOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := userID(w, r); !ok {
		return
	}

	var req createGatewayOrderRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	gatewayOrder, err := c.orders.CreateGatewayOrder(req.Amount, req.Currency)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, gatewayOrder)
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	OrderID           uint   `json:"orderId" validate:"required"`
}

// Verify checks the gateway callback signature and marks the order paid.
func (c *PaymentController) Verify(w http.ResponseWriter, r *http.Request) {
	if _, ok := userID(w, r); !ok {
		return
	}

	var req verifyPaymentRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.VerifyPayment(req.OrderID, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.SuccessMessage(w, "Payment verified", order)
}
