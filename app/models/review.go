package models

import "gorm.io/gorm"

// Review is one customer's review of a product. The composite unique index
// enforces one review per user per product at the storage layer.
type Review struct {
	gorm.Model
	UserID    uint   `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"userId"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"productId"`
	Rating    int    `gorm:"not null;default:1" json:"rating"`
	Title     string `gorm:"size:255" json:"title"`
	Comment   string `gorm:"type:text;not null" json:"comment"`
	Images    string `gorm:"type:text" json:"images"` // JSON-encoded list of URLs

	// Set when a Delivered order by this user contains the product.
	IsVerifiedPurchase bool `gorm:"not null;default:false" json:"isVerifiedPurchase"`
}
