package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/pkg/orm"
)

// CartRepository handles database operations for carts and their items.
type CartRepository struct {
	q *orm.Query
}

func NewCartRepository(q *orm.Query) *CartRepository {
	return &CartRepository{q: q}
}

// FindByUser returns the user's cart with items and products preloaded, or
// gorm.ErrRecordNotFound when the user has no cart yet.
func (r *CartRepository) FindByUser(userID uint) (models.Cart, error) {
	var cart models.Cart
	err := r.q.Model(&models.Cart{}).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart)
	return cart, err
}

// FindOrCreate returns the user's cart, creating an empty one on first use.
func (r *CartRepository) FindOrCreate(userID uint) (models.Cart, error) {
	cart, err := r.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := r.q.Create(&cart); err != nil {
			return cart, err
		}
		return cart, nil
	}
	return cart, err
}

// AddItems appends new lines to the cart.
func (r *CartRepository) AddItems(items []models.CartItem) error {
	return r.q.Create(&items)
}

// FindItem looks up one cart line by id.
func (r *CartRepository) FindItem(itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.q.Model(&models.CartItem{}).Where("id = ?", itemID).First(&item)
	return item, err
}

// UpdateItem persists changes to a cart line.
func (r *CartRepository) UpdateItem(item *models.CartItem) error {
	return r.q.Save(item)
}

// DeleteItem removes a cart line by id.
func (r *CartRepository) DeleteItem(itemID uint) error {
	return r.q.Delete(&models.CartItem{}, itemID)
}

// Clear removes every line from the cart.
func (r *CartRepository) Clear(cartID uint) error {
	return r.q.Where("cart_id = ?", cartID).Delete(&models.CartItem{})
}
