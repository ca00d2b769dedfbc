package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/repositories"
	"github.com/hydroline/hydroline/pkg/collection"
)

// CartLineInput is one incoming (product, quantity) pair.
type CartLineInput struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// CartService manages the per-user cart.
type CartService struct {
	carts *repositories.CartRepository
}

func NewCartService(carts *repositories.CartRepository) *CartService {
	return &CartService{carts: carts}
}

// Get returns the user's cart with product details populated, creating an
// empty cart on first use.
func (s *CartService) Get(userID uint) (models.Cart, error) {
	return s.carts.FindOrCreate(userID)
}

// Add appends items to the cart. Lines with a missing product id or
// non-positive quantity are silently dropped. If any incoming product is
// already in the cart the whole request is rejected with ErrAlreadyInCart;
// quantities are never merged.
func (s *CartService) Add(userID uint, lines []CartLineInput) (models.Cart, error) {
	lines = collection.Filter(lines, func(l CartLineInput) bool {
		return l.ProductID > 0 && l.Quantity > 0
	})
	if len(lines) == 0 {
		return models.Cart{}, ErrNoValidItems
	}

	cart, err := s.carts.FindOrCreate(userID)
	if err != nil {
		return models.Cart{}, err
	}

	existing := collection.KeyBy(cart.Items, func(it models.CartItem) uint { return it.ProductID })
	for _, l := range lines {
		if _, ok := existing[l.ProductID]; ok {
			return models.Cart{}, ErrAlreadyInCart
		}
	}

	items := collection.Map(lines, func(l CartLineInput) models.CartItem {
		return models.CartItem{CartID: cart.ID, ProductID: l.ProductID, Quantity: l.Quantity}
	})
	if err := s.carts.AddItems(items); err != nil {
		return models.Cart{}, err
	}

	// Always re-read so the response carries product details.
	return s.carts.FindByUser(userID)
}

// UpdateQuantity sets the quantity of one cart line the user owns.
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return models.Cart{}, ErrInvalidQuantity
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return models.Cart{}, err
	}

	item.Quantity = quantity
	if err := s.carts.UpdateItem(&item); err != nil {
		return models.Cart{}, err
	}
	return s.carts.FindByUser(userID)
}

// Remove deletes one cart line the user owns.
func (s *CartService) Remove(userID, itemID uint) (models.Cart, error) {
	if _, err := s.ownedItem(userID, itemID); err != nil {
		return models.Cart{}, err
	}
	if err := s.carts.DeleteItem(itemID); err != nil {
		return models.Cart{}, err
	}
	return s.carts.FindByUser(userID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(userID uint) error {
	cart, err := s.carts.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.carts.Clear(cart.ID)
}

func (s *CartService) ownedItem(userID, itemID uint) (models.CartItem, error) {
	item, err := s.carts.FindItem(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartItem{}, ErrNotFound
	}
	if err != nil {
		return models.CartItem{}, err
	}

	// A user without a cart owns no cart item.
	cart, err := s.carts.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartItem{}, ErrForbidden
	}
	if err != nil {
		return models.CartItem{}, err
	}
	if item.CartID != cart.ID {
		return models.CartItem{}, ErrForbidden
	}
	return item, nil
}
