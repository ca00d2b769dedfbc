package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/repositories"
	"github.com/hydroline/hydroline/pkg/orm"
	"github.com/hydroline/hydroline/pkg/storage"
)

// ProductInput is the validated body of product create/update requests.
type ProductInput struct {
	Name           string `json:"name" validate:"required,min=2,max=200"`
	Path           string `json:"path" validate:"required,alpha_dash"`
	Description    string `json:"description"`
	CategoryID     uint   `json:"categoryId"`
	Price          int64  `json:"price" validate:"required,gt=0"`
	DiscountPrice  int64  `json:"discountPrice" validate:"gte=0"`
	DeliveryCharge int64  `json:"deliveryCharge" validate:"gte=0"`
	Stock          int    `json:"stock" validate:"gte=0"`
	Specs          string `json:"specs"`
}

// CategoryInput is the validated body of category create/update requests.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

// CatalogService manages products and categories, including admin image
// uploads through the storage disk.
type CatalogService struct {
	products *repositories.ProductRepository
	storage  *storage.Manager
}

func NewCatalogService(products *repositories.ProductRepository, store *storage.Manager) *CatalogService {
	return &CatalogService{products: products, storage: store}
}

// List returns one catalog page, optionally filtered by category.
func (s *CatalogService) List(categoryID uint, page, limit int) ([]models.Product, orm.Pagination, error) {
	return s.products.List(categoryID, page, limit)
}

// Get returns one product by id.
func (s *CatalogService) Get(id uint) (models.Product, error) {
	p, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

// GetByPath returns one product by URL slug.
func (s *CatalogService) GetByPath(path string) (models.Product, error) {
	p, err := s.products.FindByPath(path)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

// Create persists a new product; images are uploaded first so the row is
// written once with its final URLs. A duplicate name+path returns
// ErrDuplicate.
func (s *CatalogService) Create(ctx context.Context, in ProductInput, images []*multipart.FileHeader) (models.Product, error) {
	urls, err := s.uploadAll(ctx, "products", images)
	if err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		Name:           in.Name,
		Path:           in.Path,
		Description:    in.Description,
		CategoryID:     in.CategoryID,
		Price:          in.Price,
		DiscountPrice:  in.DiscountPrice,
		DeliveryCharge: in.DeliveryCharge,
		Stock:          in.Stock,
		Images:         encodeImageList(urls),
		Specs:          in.Specs,
	}
	if err := s.products.Create(&p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Product{}, ErrDuplicate
		}
		return models.Product{}, err
	}
	return p, nil
}

// Update replaces a product's fields; new images are appended to the
// existing list.
func (s *CatalogService) Update(ctx context.Context, id uint, in ProductInput, images []*multipart.FileHeader) (models.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return models.Product{}, err
	}

	urls, err := s.uploadAll(ctx, "products", images)
	if err != nil {
		return models.Product{}, err
	}

	p.Name = in.Name
	p.Path = in.Path
	p.Description = in.Description
	p.CategoryID = in.CategoryID
	p.Price = in.Price
	p.DiscountPrice = in.DiscountPrice
	p.DeliveryCharge = in.DeliveryCharge
	p.Stock = in.Stock
	p.Specs = in.Specs
	if len(urls) > 0 {
		p.Images = encodeImageList(append(decodeImageList(p.Images), urls...))
	}

	if err := s.products.Update(&p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Product{}, ErrDuplicate
		}
		return models.Product{}, err
	}
	return p, nil
}

// Delete removes a product by id.
func (s *CatalogService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.products.Delete(id)
}

// Categories returns all categories.
func (s *CatalogService) Categories() ([]models.Category, error) {
	return s.products.Categories()
}

// CreateCategory persists a new category; duplicate names return
// ErrDuplicate.
func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput, image *multipart.FileHeader) (models.Category, error) {
	c := models.Category{Name: in.Name, Description: in.Description}

	if image != nil {
		urls, err := s.uploadAll(ctx, "categories", []*multipart.FileHeader{image})
		if err != nil {
			return models.Category{}, err
		}
		c.Image = urls[0]
	}

	if err := s.products.CreateCategory(&c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Category{}, ErrDuplicate
		}
		return models.Category{}, err
	}
	return c, nil
}

// UpdateCategory replaces a category's fields.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, in CategoryInput, image *multipart.FileHeader) (models.Category, error) {
	c, err := s.products.FindCategory(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, ErrNotFound
	}
	if err != nil {
		return models.Category{}, err
	}

	c.Name = in.Name
	c.Description = in.Description
	if image != nil {
		urls, err := s.uploadAll(ctx, "categories", []*multipart.FileHeader{image})
		if err != nil {
			return models.Category{}, err
		}
		c.Image = urls[0]
	}

	if err := s.products.UpdateCategory(&c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Category{}, ErrDuplicate
		}
		return models.Category{}, err
	}
	return c, nil
}

// DeleteCategory removes a category by id.
func (s *CatalogService) DeleteCategory(id uint) error {
	_, err := s.products.FindCategory(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.products.DeleteCategory(id)
}

// uploadAll stores each file under dir and returns the public URLs. Uploads
// run synchronously inside the request cycle; there is no background queue.
func (s *CatalogService) uploadAll(ctx context.Context, dir string, files []*multipart.FileHeader) ([]string, error) {
	if s.storage == nil || len(files) == 0 {
		return nil, nil
	}

	disk := s.storage.Default()
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}

		path := fmt.Sprintf("%s/%d%s", dir, time.Now().UnixNano(), filepath.Ext(fh.Filename))
		err = disk.PutStream(ctx, path, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, disk.URL(path))
	}
	return urls, nil
}
