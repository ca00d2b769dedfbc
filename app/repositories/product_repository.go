package repositories

import (
	"time"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/pkg/orm"
)

const catalogCacheTTL = 5 * time.Minute

// ProductRepository handles database operations for products and categories.
type ProductRepository struct {
	q *orm.Query
}

func NewProductRepository(q *orm.Query) *ProductRepository {
	return &ProductRepository{q: q}
}

// List returns one page of products, optionally filtered by category.
func (r *ProductRepository) List(categoryID uint, page, limit int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	q := r.q.Model(&models.Product{}).Preload("Category").Order("id desc")
	if categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	pagination, err := q.GetWithPagination(&products, page, limit)
	return products, pagination, err
}

// FindByID looks up a product with its category preloaded.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := r.q.Model(&models.Product{}).Preload("Category").Where("id = ?", id).First(&p)
	return p, err
}

// FindByPath looks up a product by its URL slug.
func (r *ProductRepository) FindByPath(path string) (models.Product, error) {
	var p models.Product
	err := r.q.Model(&models.Product{}).Preload("Category").Where("path = ?", path).First(&p)
	return p, err
}

// FindByIDs returns the live products for the given ids, keyed later by the
// caller.
func (r *ProductRepository) FindByIDs(ids []uint) ([]models.Product, error) {
	var out []models.Product
	err := r.q.Model(&models.Product{}).Where("id IN ?", ids).Get(&out)
	return out, err
}

// Create persists a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	return r.q.Create(p)
}

// Update persists changes to a product.
func (r *ProductRepository) Update(p *models.Product) error {
	return r.q.Save(p)
}

// Delete removes a product by id.
func (r *ProductRepository) Delete(id uint) error {
	return r.q.Delete(&models.Product{}, id)
}

// Categories returns all categories, cache-through.
func (r *ProductRepository) Categories() ([]models.Category, error) {
	var out []models.Category
	err := r.q.Model(&models.Category{}).Order("name").
		Cache("catalog:categories", catalogCacheTTL, &out)
	return out, err
}

// FindCategory looks up a category by primary key.
func (r *ProductRepository) FindCategory(id uint) (models.Category, error) {
	var c models.Category
	err := r.q.Model(&models.Category{}).Where("id = ?", id).First(&c)
	return c, err
}

// CreateCategory persists a new category.
func (r *ProductRepository) CreateCategory(c *models.Category) error {
	return r.q.Create(c)
}

// UpdateCategory persists changes to a category.
func (r *ProductRepository) UpdateCategory(c *models.Category) error {
	return r.q.Save(c)
}

// DeleteCategory removes a category by id.
func (r *ProductRepository) DeleteCategory(id uint) error {
	return r.q.Delete(&models.Category{}, id)
}
