package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/repositories"
	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/database"
	"github.com/hydroline/hydroline/pkg/orm"
)

// env is one isolated in-memory database with the repository graph built
// on top of it.
type env struct {
	db       *database.DB
	users    *repositories.UserRepository
	products *repositories.ProductRepository
	carts    *repositories.CartRepository
	orders   *repositories.OrderRepository
	reviews  *repositories.ReviewRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Address{},
		&models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
		&models.Review{},
	))

	q := orm.New(db.Gorm, nil)
	return &env{
		db:       db,
		users:    repositories.NewUserRepository(q),
		products: repositories.NewProductRepository(q),
		carts:    repositories.NewCartRepository(q),
		orders:   repositories.NewOrderRepository(q),
		reviews:  repositories.NewReviewRepository(q),
	}
}

func (e *env) seedUser(t *testing.T, email string) models.User {
	t.Helper()
	u := models.User{Name: "Test User", Email: email, Password: "x", Role: "customer"}
	require.NoError(t, e.users.Create(&u))
	return u
}

func (e *env) seedAddress(t *testing.T, userID uint) models.Address {
	t.Helper()
	a := models.Address{
		UserID:   userID,
		FullName: "Test User",
		Phone:    "9876543210",
		Line1:    "14 Industrial Estate",
		City:     "Coimbatore",
		State:    "Tamil Nadu",
		Pincode:  "641004",
		Country:  "India",
	}
	require.NoError(t, e.users.CreateAddress(&a))
	return a
}

func (e *env) seedProduct(t *testing.T, name string, price int64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Path: name, Price: price, Stock: stock}
	require.NoError(t, e.products.Create(&p))
	return p
}

// stubGateway records calls and returns scripted results.
type stubGateway struct {
	orderID   string
	refundID  string
	refundErr error
	validSigs map[string]bool // key: orderID|paymentID|signature

	refundCalls []refundCall
}

type refundCall struct {
	PaymentID string
	Amount    int64
}

func (g *stubGateway) CreateOrder(amountPaise int64, currency, receipt string) (services.GatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}
	return services.GatewayOrder{ID: g.orderID, Amount: amountPaise, Currency: currency, KeyID: "rzp_test_key"}, nil
}

func (g *stubGateway) Refund(paymentID string, amountPaise int64) (services.GatewayRefund, error) {
	g.refundCalls = append(g.refundCalls, refundCall{PaymentID: paymentID, Amount: amountPaise})
	if g.refundErr != nil {
		return services.GatewayRefund{}, g.refundErr
	}
	return services.GatewayRefund{ID: g.refundID, Amount: amountPaise}, nil
}

func (g *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return g.validSigs[orderID+"|"+paymentID+"|"+signature]
}
