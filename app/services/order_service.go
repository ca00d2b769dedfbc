package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/repositories"
	"github.com/hydroline/hydroline/pkg/collection"
	"github.com/hydroline/hydroline/pkg/event"
	"github.com/hydroline/hydroline/pkg/orm"
)

// Event names fired by the order pipeline.
const (
	EventOrderCreated      = "order.created"
	EventOrderPaid         = "order.paid"
	EventItemStatusChanged = "order.item.status"
	EventItemCancelled     = "order.item.cancelled"
)

// OrderItemInput is one requested line of a new order. Prices arrive from
// the client checkout snapshot and are frozen onto the order item.
type OrderItemInput struct {
	ProductID      uint  `json:"productId" validate:"required"`
	Quantity       int   `json:"quantity" validate:"required,gte=1"`
	Price          int64 `json:"price" validate:"gte=0"`
	DiscountPrice  int64 `json:"discountPrice" validate:"gte=0"`
	DeliveryCharge int64 `json:"deliveryCharge" validate:"gte=0"`
}

// CreateOrderInput is the validated body of POST /api/orders.
type CreateOrderInput struct {
	Items             []OrderItemInput `json:"items"`
	ShippingAddressID uint             `json:"shippingAddress" validate:"required"`
	TotalAmount       int64            `json:"totalAmount" validate:"required"`
	PaymentMethod     string           `json:"paymentMethod" validate:"required,in=COD,Online"`
	RazorpayOrderID   string           `json:"razorpayOrderId"`
}

// OrderEvent is the payload broadcast to the admin live feed.
type OrderEvent struct {
	Event   string    `json:"event"`
	OrderID uint      `json:"orderId"`
	ItemID  uint      `json:"itemId,omitempty"`
	Status  string    `json:"status,omitempty"`
	Amount  int64     `json:"amount,omitempty"`
	At      time.Time `json:"at"`
}

// OrderService owns order creation, payment verification and the per-item
// cancellation/refund flow.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	users    *repositories.UserRepository
	gateway  PaymentGateway
	events   *event.Bus
}

func NewOrderService(
	orders *repositories.OrderRepository,
	products *repositories.ProductRepository,
	users *repositories.UserRepository,
	gateway PaymentGateway,
	events *event.Bus,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		gateway:  gateway,
		events:   events,
	}
}

func (s *OrderService) fire(name string, ev OrderEvent) {
	if s.events == nil {
		return
	}
	ev.Event = name
	ev.At = time.Now()
	s.events.FireAsync(name, ev)
}

// Create validates and persists a new order per the checkout contract:
// the address must exist and belong to the user; items whose product is gone
// or whose quantity exceeds live stock are dropped without error; an order
// with no surviving items is rejected. Stock is not decremented here.
func (s *OrderService) Create(userID uint, in CreateOrderInput) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return models.Order{}, err
	}

	addr, err := s.users.FindAddress(in.ShippingAddressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, fmt.Errorf("address %d: %w", in.ShippingAddressID, ErrNotFound)
		}
		return models.Order{}, err
	}
	if addr.UserID != userID {
		return models.Order{}, ErrForbidden
	}

	ids := collection.Map(in.Items, func(it OrderItemInput) uint { return it.ProductID })
	live, err := s.products.FindByIDs(ids)
	if err != nil {
		return models.Order{}, err
	}
	byID := collection.KeyBy(live, func(p models.Product) uint { return p.ID })

	itemPayment := models.PaymentPending
	if in.PaymentMethod == models.PaymentMethodOnline {
		itemPayment = models.PaymentPaid
	}

	var items []models.OrderItem
	for _, it := range in.Items {
		p, ok := byID[it.ProductID]
		if !ok || it.Quantity > p.Stock {
			// Gone or oversold lines are dropped, not backordered.
			continue
		}
		items = append(items, models.OrderItem{
			ProductID:         p.ID,
			Name:              p.Name,
			Image:             firstImage(p.Images),
			Quantity:          it.Quantity,
			Price:             it.Price,
			DiscountPrice:     it.DiscountPrice,
			DeliveryCharge:    it.DeliveryCharge,
			OrderStatus:       models.StatusProcessing,
			ItemPaymentStatus: itemPayment,
		})
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	paymentStatus := models.PaymentPending
	if in.PaymentMethod == models.PaymentMethodOnline {
		paymentStatus = models.PaymentPaid
	}

	order := models.Order{
		UserID:          userID,
		TotalAmount:     in.TotalAmount,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   paymentStatus,
		OverallStatus:   models.StatusProcessing,
		RazorpayOrderID: in.RazorpayOrderID,
		ShipFullName:    addr.FullName,
		ShipPhone:       addr.Phone,
		ShipLine1:       addr.Line1,
		ShipLine2:       addr.Line2,
		ShipCity:        addr.City,
		ShipState:       addr.State,
		ShipPincode:     addr.Pincode,
		ShipCountry:     addr.Country,
		Items:           items,
	}

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, err
	}

	s.fire(EventOrderCreated, OrderEvent{OrderID: order.ID, Amount: order.TotalAmount})
	return order, nil
}

// CreateGatewayOrder registers a checkout amount with the payment gateway
// and returns the ids the storefront widget needs.
func (s *OrderService) CreateGatewayOrder(amountPaise int64, currency string) (GatewayOrder, error) {
	receipt := fmt.Sprintf("rcpt_%d", time.Now().UnixNano())
	return s.gateway.CreateOrder(amountPaise, currency, receipt)
}

// VerifyPayment checks the gateway callback signature and, on a match, marks
// the whole order paid: order-level status, the three gateway identifiers,
// and every item's payment status. A bad signature changes nothing.
func (s *OrderService) VerifyPayment(orderID uint, gatewayOrderID, paymentID, signature string) (models.Order, error) {
	if !s.gateway.VerifySignature(gatewayOrderID, paymentID, signature) {
		return models.Order{}, ErrInvalidSignature
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	err = s.orders.Transaction(func(tx *repositories.OrderRepository) error {
		order.PaymentStatus = models.PaymentPaid
		order.RazorpayOrderID = gatewayOrderID
		order.RazorpayPaymentID = paymentID
		order.RazorpaySignature = signature
		if err := tx.Save(&order); err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].ItemPaymentStatus = models.PaymentPaid
			order.Items[i].RazorpayPaymentID = paymentID
			if err := tx.SaveItem(&order.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	s.fire(EventOrderPaid, OrderEvent{OrderID: order.ID, Amount: order.TotalAmount})
	return order, nil
}

// CancelResult reports the outcome of an item cancellation.
type CancelResult struct {
	Order        models.Order `json:"order"`
	RefundAmount int64        `json:"refundAmount"` // paise, 0 when nothing was refunded
	RefundID     string       `json:"refundId,omitempty"`
}

// CancelItem cancels one order item and, for paid online orders, issues a
// gateway refund for (effective unit price * quantity + delivery charge).
// The cancellation is persisted before the refund call, so a gateway failure
// leaves the item Cancelled but unrefunded; the error carries the gateway
// description and no compensating rollback is attempted.
func (s *OrderService) CancelItem(userID, orderID, itemID uint, reason string, asAdmin bool) (CancelResult, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CancelResult{}, ErrNotFound
		}
		return CancelResult{}, err
	}
	if !asAdmin && order.UserID != userID {
		return CancelResult{}, ErrForbidden
	}

	item, err := s.orders.FindItem(orderID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CancelResult{}, ErrNotFound
		}
		return CancelResult{}, err
	}

	if !models.CanCancel(item.OrderStatus) {
		return CancelResult{}, ErrCannotCancel
	}

	if reason == "" {
		reason = "Cancelled by user"
	}
	now := time.Now()
	item.OrderStatus = models.StatusCancelled
	item.CancelReason = reason
	item.CancelledAt = &now
	if err := s.orders.SaveItem(&item); err != nil {
		return CancelResult{}, err
	}

	result := CancelResult{}

	needsRefund := order.PaymentMethod == models.PaymentMethodOnline &&
		item.ItemPaymentStatus == models.PaymentPaid &&
		item.RefundID == ""
	if needsRefund {
		paymentID := item.RazorpayPaymentID
		if paymentID == "" {
			paymentID = order.RazorpayPaymentID
		}
		if paymentID == "" {
			return CancelResult{}, ErrMissingPaymentID
		}

		amount := item.RefundableAmount()
		refund, err := s.gateway.Refund(paymentID, amount)
		if err != nil {
			return CancelResult{}, err
		}

		refundedAt := time.Now()
		item.ItemPaymentStatus = models.PaymentRefunded
		item.RefundID = refund.ID
		item.RefundAmount = refund.Amount
		item.RefundedAt = &refundedAt
		if err := s.orders.SaveItem(&item); err != nil {
			return CancelResult{}, err
		}
		result.RefundAmount = refund.Amount
		result.RefundID = refund.ID
	}

	// Re-read so the promotion check sees the persisted item states.
	order, err = s.orders.FindByID(orderID)
	if err != nil {
		return CancelResult{}, err
	}
	allCancelled := collection.Every(order.Items, func(it models.OrderItem) bool {
		return it.OrderStatus == models.StatusCancelled
	})
	if allCancelled && order.OverallStatus != models.StatusCancelled {
		order.OverallStatus = models.StatusCancelled
		if err := s.orders.Save(&order); err != nil {
			return CancelResult{}, err
		}
	}

	result.Order = order
	s.fire(EventItemCancelled, OrderEvent{
		OrderID: orderID,
		ItemID:  itemID,
		Status:  string(models.StatusCancelled),
		Amount:  result.RefundAmount,
	})
	return result, nil
}

// UpdateItemStatus moves an item through the fulfilment states. Every
// transition goes through the shared validator; Delivered stamps the
// delivery timestamp.
func (s *OrderService) UpdateItemStatus(orderID, itemID uint, to models.ItemStatus) (models.OrderItem, error) {
	item, err := s.orders.FindItem(orderID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.OrderItem{}, ErrNotFound
		}
		return models.OrderItem{}, err
	}

	next, err := models.Transition(item.OrderStatus, to)
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	item.OrderStatus = next
	if next == models.StatusDelivered {
		now := time.Now()
		item.DeliveredAt = &now
	}
	if err := s.orders.SaveItem(&item); err != nil {
		return models.OrderItem{}, err
	}

	s.fire(EventItemStatusChanged, OrderEvent{
		OrderID: orderID,
		ItemID:  itemID,
		Status:  string(next),
	})
	return item, nil
}

// Get returns one order; non-admins may only read their own.
func (s *OrderService) Get(userID, orderID uint, asAdmin bool) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	if !asAdmin && order.UserID != userID {
		return models.Order{}, ErrForbidden
	}
	return order, nil
}

// ListByUser returns one page of the user's order history.
func (s *OrderService) ListByUser(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ListByUser(userID, page, limit)
}

// ListAll returns one page of all orders for the admin console.
func (s *OrderService) ListAll(status models.ItemStatus, page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ListAll(status, page, limit)
}

// firstImage returns the first URL of a JSON-encoded image list, or the raw
// value when it is not a list.
func firstImage(images string) string {
	list := decodeImageList(images)
	if len(list) > 0 {
		return list[0]
	}
	return ""
}
