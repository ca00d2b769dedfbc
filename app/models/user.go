package models

import "gorm.io/gorm"

// User is the primary account model.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Phone    string `gorm:"size:20" json:"phone"`
	Role     string `gorm:"size:50;default:customer" json:"role"`

	Addresses []Address `gorm:"constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
}

// Address is a user-owned mailing address. Orders copy its fields at
// creation time instead of referencing it, so later edits never affect
// placed orders.
type Address struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index" json:"userId"`
	FullName string `gorm:"size:255;not null" json:"fullName"`
	Phone    string `gorm:"size:20;not null" json:"phone"`
	Line1    string `gorm:"size:255;not null" json:"line1"`
	Line2    string `gorm:"size:255" json:"line2"`
	City     string `gorm:"size:100;not null" json:"city"`
	State    string `gorm:"size:100;not null" json:"state"`
	Pincode  string `gorm:"size:20;not null" json:"pincode"`
	Country  string `gorm:"size:100;default:India" json:"country"`
}
