package repositories

import (
	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/pkg/orm"
)

// OrderRepository handles database operations for orders and their items.
type OrderRepository struct {
	q *orm.Query
}

func NewOrderRepository(q *orm.Query) *OrderRepository {
	return &OrderRepository{q: q}
}

// Create persists an order together with its items in one transaction.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.q.Transaction(func(tx *orm.Query) error {
		return tx.Create(order)
	})
}

// FindByID returns an order with its items preloaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.q.Model(&models.Order{}).Preload("Items").Where("id = ?", id).First(&order)
	return order, err
}

// FindItem returns one order item by order and item id.
func (r *OrderRepository) FindItem(orderID, itemID uint) (models.OrderItem, error) {
	var item models.OrderItem
	err := r.q.Model(&models.OrderItem{}).
		Where("id = ? AND order_id = ?", itemID, orderID).
		First(&item)
	return item, err
}

// ListByUser returns one page of the user's orders, newest first.
func (r *OrderRepository) ListByUser(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := r.q.Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("id desc").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// ListAll returns one page of all orders for the admin console, optionally
// filtered by overall status.
func (r *OrderRepository) ListAll(status models.ItemStatus, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	q := r.q.Model(&models.Order{}).Preload("Items").Order("id desc")
	if status != "" {
		q = q.Where("overall_status = ?", status)
	}
	pagination, err := q.GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// Save persists changes to an order header.
func (r *OrderRepository) Save(order *models.Order) error {
	return r.q.Save(order)
}

// SaveItem persists changes to an order item.
func (r *OrderRepository) SaveItem(item *models.OrderItem) error {
	return r.q.Save(item)
}

// Transaction runs fn against transactional copies of this repository.
func (r *OrderRepository) Transaction(fn func(tx *OrderRepository) error) error {
	return r.q.Transaction(func(tx *orm.Query) error {
		return fn(&OrderRepository{q: tx})
	})
}

// HasDeliveredProduct reports whether the user has a Delivered order item for
// the product. Used to flag verified-purchase reviews.
func (r *OrderRepository) HasDeliveredProduct(userID, productID uint) (bool, error) {
	var n int64
	err := r.q.Model(&models.OrderItem{}).
		Where("product_id = ? AND order_status = ?", productID, models.StatusDelivered).
		Where("order_id IN (?)", r.q.Model(&models.Order{}).Where("user_id = ?", userID).Gorm().Select("id")).
		Count(&n)
	return n > 0, err
}
