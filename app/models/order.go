package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is one placed checkout. The shipping address fields are copied from
// the user's saved address at creation time and never updated afterwards.
// Orders are retained for audit and never deleted.
type Order struct {
	gorm.Model
	UserID        uint       `gorm:"not null;index" json:"userId"`
	TotalAmount   int64      `gorm:"not null" json:"totalAmount"` // paise
	PaymentMethod string     `gorm:"size:20;not null" json:"paymentMethod"`
	PaymentStatus string     `gorm:"size:20;not null;default:Pending" json:"paymentStatus"`
	OverallStatus ItemStatus `gorm:"size:30;not null;default:Processing" json:"overallStatus"`

	// Gateway identifiers, set by payment verification.
	RazorpayOrderID   string `gorm:"size:100;index" json:"razorpayOrderId"`
	RazorpayPaymentID string `gorm:"size:100" json:"razorpayPaymentId"`
	RazorpaySignature string `gorm:"size:255" json:"-"`

	// Shipping address snapshot.
	ShipFullName string `gorm:"size:255;not null" json:"shipFullName"`
	ShipPhone    string `gorm:"size:20;not null" json:"shipPhone"`
	ShipLine1    string `gorm:"size:255;not null" json:"shipLine1"`
	ShipLine2    string `gorm:"size:255" json:"shipLine2"`
	ShipCity     string `gorm:"size:100;not null" json:"shipCity"`
	ShipState    string `gorm:"size:100;not null" json:"shipState"`
	ShipPincode  string `gorm:"size:20;not null" json:"shipPincode"`
	ShipCountry  string `gorm:"size:100" json:"shipCountry"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one product line of an order. All price fields are frozen at
// purchase time so later catalog edits never change what was charged.
type OrderItem struct {
	gorm.Model
	OrderID   uint `gorm:"not null;index" json:"orderId"`
	ProductID uint `gorm:"not null;index" json:"productId"`

	Name           string `gorm:"size:255;not null" json:"name"`
	Image          string `gorm:"size:512" json:"image"`
	Quantity       int    `gorm:"not null" json:"quantity"`
	Price          int64  `gorm:"not null" json:"price"`          // paise, at purchase
	DiscountPrice  int64  `gorm:"not null" json:"discountPrice"`  // paise, at purchase
	DeliveryCharge int64  `gorm:"not null" json:"deliveryCharge"` // paise, at purchase

	OrderStatus       ItemStatus `gorm:"size:30;not null;default:Processing" json:"orderStatus"`
	ItemPaymentStatus string     `gorm:"size:20;not null;default:Pending" json:"itemPaymentStatus"`

	// Item-level gateway payment id; falls back to the order-level id when
	// empty.
	RazorpayPaymentID string `gorm:"size:100" json:"razorpayPaymentId"`

	RefundID     string     `gorm:"size:100" json:"refundId"`
	RefundAmount int64      `json:"refundAmount"` // paise
	RefundedAt   *time.Time `json:"refundedAt"`

	CancelReason string     `gorm:"size:255" json:"cancelReason"`
	CancelledAt  *time.Time `json:"cancelledAt"`

	ExpectedDeliveryAt *time.Time `json:"expectedDeliveryAt"`
	DeliveredAt        *time.Time `json:"deliveredAt"`
}

// RefundableAmount is the amount returned when this item is cancelled after
// payment: the effective unit price times quantity plus its delivery charge,
// in paise.
func (i OrderItem) RefundableAmount() int64 {
	unit := i.Price
	if i.DiscountPrice > 0 {
		unit = i.DiscountPrice
	}
	return unit*int64(i.Quantity) + i.DeliveryCharge
}
