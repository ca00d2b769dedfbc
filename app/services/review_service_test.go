package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/services"
)

func newReviewService(e *env) *services.ReviewService {
	return services.NewReviewService(e.reviews, e.products, e.orders, nil)
}

func TestReviewCreate(t *testing.T) {
	e := newEnv(t)
	svc := newReviewService(e)

	user := e.seedUser(t, "buyer@example.com")
	p := e.seedProduct(t, "gear-pump", 485000, 5)

	review, err := svc.Create(context.Background(), user.ID, services.ReviewInput{
		ProductID: p.ID,
		Rating:    4,
		Title:     "Solid pump",
		Comment:   "Runs quiet at 200 bar.",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.False(t, review.IsVerifiedPurchase)

	_, err = svc.Create(context.Background(), user.ID, services.ReviewInput{
		ProductID: 9999,
		Comment:   "x",
	}, nil)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestReviewDuplicatePerUserProduct(t *testing.T) {
	e := newEnv(t)
	svc := newReviewService(e)

	user := e.seedUser(t, "buyer@example.com")
	p := e.seedProduct(t, "gear-pump", 485000, 5)

	in := services.ReviewInput{ProductID: p.ID, Rating: 5, Comment: "Great."}
	_, err := svc.Create(context.Background(), user.ID, in, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), user.ID, in, nil)
	assert.ErrorIs(t, err, services.ErrDuplicate)

	// A different user may still review the product.
	other := e.seedUser(t, "other@example.com")
	_, err = svc.Create(context.Background(), other.ID, in, nil)
	assert.NoError(t, err)
}

func TestReviewRatingCoercedToOne(t *testing.T) {
	e := newEnv(t)
	svc := newReviewService(e)

	user := e.seedUser(t, "buyer@example.com")
	p := e.seedProduct(t, "gear-pump", 485000, 5)
	p2 := e.seedProduct(t, "hose-kit", 60000, 5)

	review, err := svc.Create(context.Background(), user.ID, services.ReviewInput{
		ProductID: p.ID, Rating: 0, Comment: "x",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, review.Rating)

	review, err = svc.Create(context.Background(), user.ID, services.ReviewInput{
		ProductID: p2.ID, Rating: 9, Comment: "x",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, review.Rating)
}

func TestReviewVerifiedPurchaseFlag(t *testing.T) {
	e := newEnv(t)
	svc := newReviewService(e)
	orderSvc := newOrderService(e, &stubGateway{})

	user := e.seedUser(t, "buyer@example.com")
	addr := e.seedAddress(t, user.ID)
	p := e.seedProduct(t, "gear-pump", 485000, 5)

	order, err := orderSvc.Create(user.ID, services.CreateOrderInput{
		Items:             []services.OrderItemInput{{ProductID: p.ID, Quantity: 1, Price: 485000}},
		ShippingAddressID: addr.ID,
		TotalAmount:       485000,
		PaymentMethod:     models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	for _, next := range []models.ItemStatus{
		models.StatusPacked, models.StatusShipped,
		models.StatusOutForDelivery, models.StatusDelivered,
	} {
		_, err = orderSvc.UpdateItemStatus(order.ID, order.Items[0].ID, next)
		require.NoError(t, err)
	}

	review, err := svc.Create(context.Background(), user.ID, services.ReviewInput{
		ProductID: p.ID, Rating: 5, Comment: "Delivered fast, works well.",
	}, nil)
	require.NoError(t, err)
	assert.True(t, review.IsVerifiedPurchase)
}

func TestReviewUpdateAndDeleteOwnership(t *testing.T) {
	e := newEnv(t)
	svc := newReviewService(e)

	user := e.seedUser(t, "buyer@example.com")
	intruder := e.seedUser(t, "intruder@example.com")
	p := e.seedProduct(t, "gear-pump", 485000, 5)

	review, err := svc.Create(context.Background(), user.ID, services.ReviewInput{
		ProductID: p.ID, Rating: 3, Comment: "ok",
	}, nil)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), user.ID, review.ID, services.ReviewInput{
		ProductID: p.ID, Rating: 5, Comment: "Better after break-in.",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Better after break-in.", updated.Comment)

	_, err = svc.Update(context.Background(), intruder.ID, review.ID, services.ReviewInput{
		ProductID: p.ID, Comment: "hijack",
	}, nil)
	assert.ErrorIs(t, err, services.ErrForbidden)

	err = svc.Delete(intruder.ID, review.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	require.NoError(t, svc.Delete(user.ID, review.ID))
	err = svc.Delete(user.ID, review.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
