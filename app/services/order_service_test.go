package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/services"
)

func newOrderService(e *env, gw services.PaymentGateway) *services.OrderService {
	return services.NewOrderService(e.orders, e.products, e.users, gw, nil)
}

func TestCreateOrderDropsGoneAndOversoldLines(t *testing.T) {
	e := newEnv(t)
	svc := newOrderService(e, &stubGateway{})

	user := e.seedUser(t, "buyer@example.com")
	addr := e.seedAddress(t, user.ID)
	inStock := e.seedProduct(t, "gear-pump", 485000, 5)
	scarce := e.seedProduct(t, "relief-valve", 120000, 1)

	order, err := svc.Create(user.ID, services.CreateOrderInput{
		Items: []services.OrderItemInput{
			{ProductID: inStock.ID, Quantity: 1, Price: 485000},
			{ProductID: scarce.ID, Quantity: 3, Price: 120000}, // over stock, dropped
			{ProductID: 9999, Quantity: 1, Price: 100},         // gone, dropped
		},
		ShippingAddressID: addr.ID,
		TotalAmount:       485000,
		PaymentMethod:     models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, inStock.ID, order.Items[0].ProductID)
	assert.Equal(t, models.StatusProcessing, order.Items[0].OrderStatus)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, addr.FullName, order.ShipFullName)
	assert.Equal(t, addr.Pincode, order.ShipPincode)

	// Stock is untouched by checkout.
	live, err := e.products.FindByID(inStock.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, live.Stock)
}

func TestCreateOrderRejectsWhenNoLineSurvives(t *testing.T) {
	e := newEnv(t)
	svc := newOrderService(e, &stubGateway{})

	user := e.seedUser(t, "buyer@example.com")
	addr := e.seedAddress(t, user.ID)
	scarce := e.seedProduct(t, "relief-valve", 120000, 1)

	_, err := svc.Create(user.ID, services.CreateOrderInput{
		Items:             []services.OrderItemInput{{ProductID: scarce.ID, Quantity: 2, Price: 120000}},
		ShippingAddressID: addr.ID,
		TotalAmount:       240000,
		PaymentMethod:     models.PaymentMethodCOD,
	})
	assert.ErrorIs(t, err, services.ErrEmptyOrder)

	_, err = svc.Create(user.ID, services.CreateOrderInput{
		ShippingAddressID: addr.ID,
		TotalAmount:       0,
		PaymentMethod:     models.PaymentMethodCOD,
	})
	assert.ErrorIs(t, err, services.ErrEmptyOrder)
}

func TestCreateOrderRejectsForeignAddress(t *testing.T) {
	e := newEnv(t)
	svc := newOrderService(e, &stubGateway{})

	buyer := e.seedUser(t, "buyer@example.com")
	other := e.seedUser(t, "other@example.com")
	foreign := e.seedAddress(t, other.ID)
	p := e.seedProduct(t, "gear-pump", 485000, 5)

	_, err := svc.Create(buyer.ID, services.CreateOrderInput{
		Items:             []services.OrderItemInput{{ProductID: p.ID, Quantity: 1, Price: 485000}},
		ShippingAddressID: foreign.ID,
		TotalAmount:       485000,
		PaymentMethod:     models.PaymentMethodCOD,
	})
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestCreateOnlineOrderMarksItemsPaid(t *testing.T) {
	e := newEnv(t)
	svc := newOrderService(e, &stubGateway{})

	user := e.seedUser(t, "buyer@example.com")
	addr := e.seedAddress(t, user.ID)
	p := e.seedProduct(t, "gear-pump", 485000, 5)

	order, err := svc.Create(user.ID, services.CreateOrderInput{
		Items:             []services.OrderItemInput{{ProductID: p.ID, Quantity: 1, Price: 485000}},
		ShippingAddressID: addr.ID,
		TotalAmount:       485000,
		PaymentMethod:     models.PaymentMethodOnline,
		RazorpayOrderID:   "order_stub123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	assert.Equal(t, models.PaymentPaid, order.Items[0].ItemPaymentStatus)
	assert.Equal(t, "order_stub123", order.RazorpayOrderID)
}

func TestVerifyPaymentBadSignatureChangesNothing(t *testing.T) {
	e := newEnv(t)
	gw := &stubGateway{validSigs: map[string]bool{}}
	svc := newOrderService(e, gw)

	user := e.seedUser(t, "buyer@example.com")
	addr := e.seedAddress(t, user.ID)
	p := e.seedProduct(t, "gear-pump", 485000, 5)

	order, err := svc.Create(user.ID, services.CreateOrderInput{
		Items:             []services.OrderItemInput{{ProductID: p.ID, Quantity: 1, Price: 485000}},
		ShippingAddressID: addr.ID,
		TotalAmount:       485000,
		PaymentMethod:     models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(order.ID, "order_x", "pay_x", "tampered")
	assert.ErrorIs(t, err, services.ErrInvalidSignature)

	got, err := e.orders.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, got.PaymentStatus)
	assert.Empty(t, got.RazorpayPaymentID)
}

func TestVerifyPaymentMarksOrderAndItemsPaid(t *testing.T) {
	e := newEnv(t)
	gw := &stubGateway{validSigs: map[string]bool{"order_x|pay_x|sig_ok": true}}
	svc := newOrderService(e, gw)

	user := e.seedUser(t, "buyer@example.com")
	addr := e.seedAddress(t, user.ID)
	p := e.seedProduct(t, "gear-pump", 485000, 5)
	p2 := e.seedProduct(t, "hose-kit", 60000, 5)

	order, err := svc.Create(user.ID, services.CreateOrderInput{
		Items: []services.OrderItemInput{
			{ProductID: p.ID, Quantity: 1, Price: 485000},
			{ProductID: p2.ID, Quantity: 2, Price: 60000},
		},
		ShippingAddressID: addr.ID,
		TotalAmount:       605000,
		PaymentMethod:     models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	verified, err := svc.VerifyPayment(order.ID, "order_x", "pay_x", "sig_ok")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, verified.PaymentStatus)
	assert.Equal(t, "pay_x", verified.RazorpayPaymentID)

	got, err := e.orders.FindByID(order.ID)
	require.NoError(t, err)
	for _, it := range got.Items {
		assert.Equal(t, models.PaymentPaid, it.ItemPaymentStatus)
		assert.Equal(t, "pay_x", it.RazorpayPaymentID)
	}
}

// placePaidOnlineOrder creates a two-line paid online order the cancel tests
// share.
func placePaidOnlineOrder(t *testing.T, e *env, svc *services.OrderService) models.Order {
	t.Helper()

	user := e.seedUser(t, "buyer@example.com")
	addr := e.seedAddress(t, user.ID)
	pump := e.seedProduct(t, "gear-pump", 485000, 5)
	hose := e.seedProduct(t, "hose-kit", 60000, 5)

	order, err := svc.Create(user.ID, services.CreateOrderInput{
		Items: []services.OrderItemInput{
			{ProductID: pump.ID, Quantity: 2, Price: 485000, DiscountPrice: 429000, DeliveryCharge: 15000},
			{ProductID: hose.ID, Quantity: 1, Price: 60000},
		},
		ShippingAddressID: addr.ID,
		TotalAmount:       933000,
		PaymentMethod:     models.PaymentMethodOnline,
		RazorpayOrderID:   "order_x",
	})
	require.NoError(t, err)

	// Attach the captured payment id the way verification would.
	order.RazorpayPaymentID = "pay_x"
	require.NoError(t, e.orders.Save(&order))
	return order
}

func TestCancelItemRefundsEffectivePrice(t *testing.T) {
	e := newEnv(t)
	gw := &stubGateway{refundID: "rfnd_1"}
	svc := newOrderService(e, gw)
	order := placePaidOnlineOrder(t, e, svc)

	res, err := svc.CancelItem(order.UserID, order.ID, order.Items[0].ID, "wrong size", false)
	require.NoError(t, err)

	// discount 429000 * qty 2 + delivery 15000
	assert.Equal(t, int64(873000), res.RefundAmount)
	assert.Equal(t, "rfnd_1", res.RefundID)
	require.Len(t, gw.refundCalls, 1)
	assert.Equal(t, "pay_x", gw.refundCalls[0].PaymentID)

	item, err := e.orders.FindItem(order.ID, order.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, item.OrderStatus)
	assert.Equal(t, models.PaymentRefunded, item.ItemPaymentStatus)
	assert.Equal(t, "wrong size", item.CancelReason)
	assert.NotNil(t, item.CancelledAt)
	assert.NotNil(t, item.RefundedAt)

	// One line still live, so the order is not promoted.
	assert.Equal(t, models.StatusProcessing, res.Order.OverallStatus)
}

func TestCancelLastItemPromotesOrder(t *testing.T) {
	e := newEnv(t)
	gw := &stubGateway{refundID: "rfnd_1"}
	svc := newOrderService(e, gw)
	order := placePaidOnlineOrder(t, e, svc)

	_, err := svc.CancelItem(order.UserID, order.ID, order.Items[0].ID, "", false)
	require.NoError(t, err)
	res, err := svc.CancelItem(order.UserID, order.ID, order.Items[1].ID, "", false)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, res.Order.OverallStatus)
}

func TestCancelItemDefaultsReason(t *testing.T) {
	e := newEnv(t)
	svc := newOrderService(e, &stubGateway{refundID: "rfnd_1"})
	order := placePaidOnlineOrder(t, e, svc)

	_, err := svc.CancelItem(order.UserID, order.ID, order.Items[1].ID, "", false)
	require.NoError(t, err)

	item, err := e.orders.FindItem(order.ID, order.Items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled by user", item.CancelReason)
}

func TestCancelShippedItemFailsWithoutMutation(t *testing.T) {
	e := newEnv(t)
	gw := &stubGateway{refundID: "rfnd_1"}
	svc := newOrderService(e, gw)
	order := placePaidOnlineOrder(t, e, svc)

	_, err := svc.UpdateItemStatus(order.ID, order.Items[0].ID, models.StatusPacked)
	require.NoError(t, err)
	_, err = svc.UpdateItemStatus(order.ID, order.Items[0].ID, models.StatusShipped)
	require.NoError(t, err)

	_, err = svc.CancelItem(order.UserID, order.ID, order.Items[0].ID, "", false)
	assert.ErrorIs(t, err, services.ErrCannotCancel)
	assert.Empty(t, gw.refundCalls)

	item, err := e.orders.FindItem(order.ID, order.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, item.OrderStatus)
	assert.Equal(t, models.PaymentPaid, item.ItemPaymentStatus)
}

func TestCancelItemForeignOrderForbidden(t *testing.T) {
	e := newEnv(t)
	svc := newOrderService(e, &stubGateway{})
	order := placePaidOnlineOrder(t, e, svc)
	intruder := e.seedUser(t, "intruder@example.com")

	_, err := svc.CancelItem(intruder.ID, order.ID, order.Items[0].ID, "", false)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// An admin may cancel on any order.
	_, err = svc.CancelItem(intruder.ID, order.ID, order.Items[0].ID, "warehouse damage", true)
	assert.NoError(t, err)
}

func TestCancelItemGatewayFailureKeepsCancellation(t *testing.T) {
	e := newEnv(t)
	gw := &stubGateway{refundErr: errors.New("razorpay: refund pay_x: insufficient balance")}
	svc := newOrderService(e, gw)
	order := placePaidOnlineOrder(t, e, svc)

	_, err := svc.CancelItem(order.UserID, order.ID, order.Items[0].ID, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient balance")

	// The cancellation sticks; the refund fields stay empty.
	item, err := e.orders.FindItem(order.ID, order.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, item.OrderStatus)
	assert.Equal(t, models.PaymentPaid, item.ItemPaymentStatus)
	assert.Empty(t, item.RefundID)
}

func TestCancelItemMissingPaymentID(t *testing.T) {
	e := newEnv(t)
	gw := &stubGateway{refundID: "rfnd_1"}
	svc := newOrderService(e, gw)
	order := placePaidOnlineOrder(t, e, svc)

	order.RazorpayPaymentID = ""
	require.NoError(t, e.orders.Save(&order))

	_, err := svc.CancelItem(order.UserID, order.ID, order.Items[0].ID, "", false)
	assert.ErrorIs(t, err, services.ErrMissingPaymentID)
	assert.Empty(t, gw.refundCalls)
}

func TestCancelCODItemRefundsNothing(t *testing.T) {
	e := newEnv(t)
	gw := &stubGateway{refundID: "rfnd_1"}
	svc := newOrderService(e, gw)

	user := e.seedUser(t, "buyer@example.com")
	addr := e.seedAddress(t, user.ID)
	p := e.seedProduct(t, "gear-pump", 485000, 5)

	order, err := svc.Create(user.ID, services.CreateOrderInput{
		Items:             []services.OrderItemInput{{ProductID: p.ID, Quantity: 1, Price: 485000}},
		ShippingAddressID: addr.ID,
		TotalAmount:       485000,
		PaymentMethod:     models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	res, err := svc.CancelItem(user.ID, order.ID, order.Items[0].ID, "", false)
	require.NoError(t, err)
	assert.Zero(t, res.RefundAmount)
	assert.Empty(t, gw.refundCalls)
}

func TestUpdateItemStatusWalksTheChain(t *testing.T) {
	e := newEnv(t)
	svc := newOrderService(e, &stubGateway{})
	order := placePaidOnlineOrder(t, e, svc)
	itemID := order.Items[0].ID

	for _, next := range []models.ItemStatus{
		models.StatusPacked,
		models.StatusShipped,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	} {
		item, err := svc.UpdateItemStatus(order.ID, itemID, next)
		require.NoError(t, err)
		assert.Equal(t, next, item.OrderStatus)
	}

	item, err := e.orders.FindItem(order.ID, itemID)
	require.NoError(t, err)
	assert.NotNil(t, item.DeliveredAt)

	// Delivered cannot go backwards.
	_, err = svc.UpdateItemStatus(order.ID, itemID, models.StatusProcessing)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestGetOrderOwnership(t *testing.T) {
	e := newEnv(t)
	svc := newOrderService(e, &stubGateway{})
	order := placePaidOnlineOrder(t, e, svc)
	intruder := e.seedUser(t, "intruder@example.com")

	_, err := svc.Get(intruder.ID, order.ID, false)
	assert.ErrorIs(t, err, services.ErrForbidden)

	got, err := svc.Get(intruder.ID, order.ID, true)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.Get(order.UserID, 9999, false)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
