package models

import "gorm.io/gorm"

// Cart holds one user's pending items. One cart per user; at most one line
// per distinct product.
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"uniqueIndex;not null" json:"userId"`
	Items  []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// CartItem is one (product, quantity) line of a cart.
type CartItem struct {
	gorm.Model
	CartID    uint `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"cartId"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"productId"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`

	Product *Product `json:"product,omitempty"`
}
