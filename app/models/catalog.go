package models

import "gorm.io/gorm"

// Category groups products (pumps, valves, cylinders, hoses).
type Category struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"size:512" json:"image"`
}

// Product is a catalog item. Name and Path together form the natural key;
// Path is the URL slug the storefront links to.
type Product struct {
	gorm.Model
	Name           string `gorm:"size:255;not null;uniqueIndex:idx_products_name_path" json:"name"`
	Path           string `gorm:"size:255;not null;uniqueIndex:idx_products_name_path" json:"path"`
	Description    string `gorm:"type:text" json:"description"`
	CategoryID     uint   `gorm:"index" json:"categoryId"`
	Price          int64  `gorm:"not null;default:0" json:"price"`          // paise
	DiscountPrice  int64  `gorm:"not null;default:0" json:"discountPrice"`  // paise, 0 = no discount
	DeliveryCharge int64  `gorm:"not null;default:0" json:"deliveryCharge"` // paise
	Stock          int    `gorm:"not null;default:0" json:"stock"`
	Images         string `gorm:"type:text" json:"images"` // JSON-encoded list of URLs
	Specs          string `gorm:"type:text" json:"specs"`  // JSON-encoded key/value sheet

	Category *Category `json:"category,omitempty"`
}

// EffectivePrice returns the price a buyer pays per unit, in paise.
func (p Product) EffectivePrice() int64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// DiscountPercent is the display-side discount percentage, 0 when no
// discount applies.
func (p Product) DiscountPercent() int {
	if p.DiscountPrice <= 0 || p.Price <= 0 || p.DiscountPrice >= p.Price {
		return 0
	}
	return int((p.Price - p.DiscountPrice) * 100 / p.Price)
}
