package services

import (
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/hydroline/hydroline/config"
	"github.com/hydroline/hydroline/pkg/crypt"
	"github.com/hydroline/hydroline/pkg/metrics"
)

// GatewayOrder is the result of creating an order at the payment gateway.
type GatewayOrder struct {
	ID       string `json:"razorpayOrderId"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

// GatewayRefund is the result of a refund call.
type GatewayRefund struct {
	ID     string `json:"refundId"`
	Amount int64  `json:"amount"` // paise
}

// PaymentGateway abstracts the payment provider. The production
// implementation wraps the Razorpay SDK; tests substitute a stub.
type PaymentGateway interface {
	// CreateOrder registers an order for the given amount in paise and
	// returns the gateway order id the checkout widget needs.
	CreateOrder(amountPaise int64, currency, receipt string) (GatewayOrder, error)

	// Refund refunds amountPaise against a captured payment. Called exactly
	// once per cancellation; no retries.
	Refund(paymentID string, amountPaise int64) (GatewayRefund, error)

	// VerifySignature checks the checkout callback signature,
	// hex(HMAC-SHA256(secret, orderID + "|" + paymentID)).
	VerifySignature(orderID, paymentID, signature string) bool
}

// razorpayGateway is the production PaymentGateway.
type razorpayGateway struct {
	client *razorpay.Client
	keyID  string
	secret string
}

// NewRazorpayGateway builds the gateway from configuration.
func NewRazorpayGateway() PaymentGateway {
	keyID := config.RazorpayKeyID()
	secret := config.RazorpayKeySecret()
	return &razorpayGateway{
		client: razorpay.NewClient(keyID, secret),
		keyID:  keyID,
		secret: secret,
	}
}

func (g *razorpayGateway) CreateOrder(amountPaise int64, currency, receipt string) (GatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	start := time.Now()
	body, err := g.client.Order.Create(data, nil)
	metrics.ObserveGatewayCall("order_create", start, err)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("razorpay: create order: %w", err)
	}

	id, _ := body["id"].(string)
	return GatewayOrder{
		ID:       id,
		Amount:   amountPaise,
		Currency: currency,
		KeyID:    g.keyID,
	}, nil
}

func (g *razorpayGateway) Refund(paymentID string, amountPaise int64) (GatewayRefund, error) {
	start := time.Now()
	body, err := g.client.Payment.Refund(paymentID, int(amountPaise), nil, nil)
	metrics.ObserveGatewayCall("refund", start, err)
	if err != nil {
		return GatewayRefund{}, fmt.Errorf("razorpay: refund %s: %w", paymentID, err)
	}

	id, _ := body["id"].(string)
	return GatewayRefund{ID: id, Amount: amountPaise}, nil
}

func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return crypt.VerifyHMAC(g.secret, orderID+"|"+paymentID, signature)
}
