package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroline/hydroline/app/controllers"
	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/repositories"
	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/auth"
	"github.com/hydroline/hydroline/pkg/database"
	"github.com/hydroline/hydroline/pkg/middleware"
	"github.com/hydroline/hydroline/pkg/orm"
	"github.com/hydroline/hydroline/pkg/router"
)

// sigGateway accepts exactly one (orderID, paymentID, signature) triple.
type sigGateway struct {
	orderID, paymentID, signature string
}

func (g *sigGateway) CreateOrder(amountPaise int64, currency, receipt string) (services.GatewayOrder, error) {
	return services.GatewayOrder{ID: g.orderID, Amount: amountPaise, Currency: currency}, nil
}

func (g *sigGateway) Refund(paymentID string, amountPaise int64) (services.GatewayRefund, error) {
	return services.GatewayRefund{ID: "rfnd_test", Amount: amountPaise}, nil
}

func (g *sigGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return orderID == g.orderID && paymentID == g.paymentID && signature == g.signature
}

type paymentFixture struct {
	handler http.Handler
	orders  *repositories.OrderRepository
	order   models.Order
	token   string
}

func newPaymentFixture(t *testing.T) paymentFixture {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Address{},
		&models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	))

	q := orm.New(db.Gorm, nil)
	users := repositories.NewUserRepository(q)
	products := repositories.NewProductRepository(q)
	orders := repositories.NewOrderRepository(q)

	user := models.User{Name: "Buyer", Email: "buyer@example.com", Password: "x", Role: "customer"}
	require.NoError(t, users.Create(&user))
	addr := models.Address{
		UserID: user.ID, FullName: "Buyer", Phone: "9876543210",
		Line1: "14 Industrial Estate", City: "Coimbatore",
		State: "Tamil Nadu", Pincode: "641004", Country: "India",
	}
	require.NoError(t, users.CreateAddress(&addr))
	p := models.Product{Name: "gear-pump", Path: "gear-pump", Price: 485000, Stock: 5}
	require.NoError(t, products.Create(&p))

	gw := &sigGateway{orderID: "order_x", paymentID: "pay_x", signature: "sig_ok"}
	svc := services.NewOrderService(orders, products, users, gw, nil)

	order, err := svc.Create(user.ID, services.CreateOrderInput{
		Items:             []services.OrderItemInput{{ProductID: p.ID, Quantity: 1, Price: 485000}},
		ShippingAddressID: addr.ID,
		TotalAmount:       485000,
		PaymentMethod:     models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	token, err := auth.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)

	r := router.New()
	api := r.Group("/api", middleware.Auth)
	pc := controllers.NewPaymentController(svc)
	api.Post("/razorpay/order", "payments.order", pc.CreateGatewayOrder)
	api.Post("/razorpay/verify", "payments.verify", pc.Verify)

	return paymentFixture{handler: r.Handler(), orders: orders, order: order, token: token}
}

func (f paymentFixture) verify(t *testing.T, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/razorpay/verify", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	f := newPaymentFixture(t)

	rec := f.verify(t, map[string]any{
		"razorpay_order_id":   "order_x",
		"razorpay_payment_id": "pay_x",
		"razorpay_signature":  "sig_ok",
		"orderId":             f.order.ID,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "Payment verified", envelope.Message)

	got, err := f.orders.FindByID(f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, "pay_x", got.RazorpayPaymentID)
}

func TestVerifyPaymentEndpointTamperedSignature(t *testing.T) {
	f := newPaymentFixture(t)

	rec := f.verify(t, map[string]any{
		"razorpay_order_id":   "order_x",
		"razorpay_payment_id": "pay_x",
		"razorpay_signature":  "sig_forged",
		"orderId":             f.order.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Payment Signature")

	// The order is untouched.
	got, err := f.orders.FindByID(f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, got.PaymentStatus)
	assert.Empty(t, got.RazorpayPaymentID)
}

func TestVerifyPaymentEndpointRequiresAuth(t *testing.T) {
	f := newPaymentFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/razorpay/verify",
		bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyPaymentEndpointValidation(t *testing.T) {
	f := newPaymentFixture(t)

	rec := f.verify(t, map[string]any{"razorpay_order_id": "order_x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Errors, "razorpay_payment_id")
	assert.Contains(t, envelope.Errors, "razorpay_signature")
}
