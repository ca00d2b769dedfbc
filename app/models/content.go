package models

import "gorm.io/gorm"

// Testimonial is a customer quote shown on the landing page.
type Testimonial struct {
	gorm.Model
	Author  string `gorm:"size:255;not null" json:"author"`
	Company string `gorm:"size:255" json:"company"`
	Quote   string `gorm:"type:text;not null" json:"quote"`
	Image   string `gorm:"size:512" json:"image"`
}

// Blog is an editorial post; Slug is the URL key.
type Blog struct {
	gorm.Model
	Title   string `gorm:"size:255;not null" json:"title"`
	Slug    string `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Excerpt string `gorm:"type:text" json:"excerpt"`
	Body    string `gorm:"type:text;not null" json:"body"`
	Cover   string `gorm:"size:512" json:"cover"`
	Author  string `gorm:"size:255" json:"author"`
}

// Policy is a legal page keyed by category ("privacy", "returns", "terms").
type Policy struct {
	gorm.Model
	Category string `gorm:"uniqueIndex;size:100;not null" json:"category"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Body     string `gorm:"type:text;not null" json:"body"`
}

// Seo holds per-path metadata for storefront pages.
type Seo struct {
	gorm.Model
	Path        string `gorm:"uniqueIndex;size:255;not null" json:"path"`
	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Keywords    string `gorm:"type:text" json:"keywords"`
}

// Contact is the singleton contact-page document.
type Contact struct {
	gorm.Model
	Email   string `gorm:"size:255" json:"email"`
	Phone   string `gorm:"size:50" json:"phone"`
	Address string `gorm:"type:text" json:"address"`
	MapURL  string `gorm:"size:512" json:"mapUrl"`
}

// AboutPage is the singleton about-page document.
type AboutPage struct {
	gorm.Model
	Heading string `gorm:"size:255" json:"heading"`
	Body    string `gorm:"type:text" json:"body"`
	Image   string `gorm:"size:512" json:"image"`
}

// Hero is the singleton landing-page hero banner.
type Hero struct {
	gorm.Model
	Heading    string `gorm:"size:255" json:"heading"`
	Subheading string `gorm:"size:255" json:"subheading"`
	Image      string `gorm:"size:512" json:"image"`
	CTALabel   string `gorm:"size:100" json:"ctaLabel"`
	CTALink    string `gorm:"size:512" json:"ctaLink"`
}

// Offer is the singleton promotional strip.
type Offer struct {
	gorm.Model
	Text     string `gorm:"size:255" json:"text"`
	Link     string `gorm:"size:512" json:"link"`
	IsActive bool   `gorm:"not null;default:false" json:"isActive"`
}
