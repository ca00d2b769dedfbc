package repositories

import (
	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/pkg/orm"
)

// ReviewRepository handles database operations for product reviews.
type ReviewRepository struct {
	q *orm.Query
}

func NewReviewRepository(q *orm.Query) *ReviewRepository {
	return &ReviewRepository{q: q}
}

// Create persists a new review. A duplicate (user, product) pair surfaces as
// gorm.ErrDuplicatedKey via TranslateError.
func (r *ReviewRepository) Create(review *models.Review) error {
	return r.q.Create(review)
}

// Update persists changes to a review.
func (r *ReviewRepository) Update(review *models.Review) error {
	return r.q.Save(review)
}

// FindByID looks up a review by primary key.
func (r *ReviewRepository) FindByID(id uint) (models.Review, error) {
	var review models.Review
	err := r.q.Model(&models.Review{}).Where("id = ?", id).First(&review)
	return review, err
}

// ListByProduct returns one page of a product's reviews, newest first.
func (r *ReviewRepository) ListByProduct(productID uint, page, limit int) ([]models.Review, orm.Pagination, error) {
	var reviews []models.Review
	pagination, err := r.q.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Order("id desc").
		GetWithPagination(&reviews, page, limit)
	return reviews, pagination, err
}

// Delete removes a review by id.
func (r *ReviewRepository) Delete(id uint) error {
	return r.q.Delete(&models.Review{}, id)
}
