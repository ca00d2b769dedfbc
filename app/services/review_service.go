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

// ReviewInput is the parsed multipart body of review create/update requests.
type ReviewInput struct {
	ProductID uint   `json:"productId" validate:"required"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment" validate:"required"`
}

// ReviewService manages product reviews.
type ReviewService struct {
	reviews  *repositories.ReviewRepository
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	storage  *storage.Manager
}

func NewReviewService(
	reviews *repositories.ReviewRepository,
	products *repositories.ProductRepository,
	orders *repositories.OrderRepository,
	store *storage.Manager,
) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, orders: orders, storage: store}
}

// Create persists a review. A rating outside 1..5 is coerced to 1. The
// verified-purchase flag is set when the user has a Delivered order item for
// the product. A second review for the same user/product pair returns
// ErrDuplicate.
func (s *ReviewService) Create(ctx context.Context, userID uint, in ReviewInput, images []*multipart.FileHeader) (models.Review, error) {
	if _, err := s.products.FindByID(in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Review{}, ErrNotFound
		}
		return models.Review{}, err
	}

	verified, err := s.orders.HasDeliveredProduct(userID, in.ProductID)
	if err != nil {
		return models.Review{}, err
	}

	urls, err := s.uploadAll(ctx, images)
	if err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		UserID:             userID,
		ProductID:          in.ProductID,
		Rating:             clampRating(in.Rating),
		Title:              in.Title,
		Comment:            in.Comment,
		Images:             encodeImageList(urls),
		IsVerifiedPurchase: verified,
	}
	if err := s.reviews.Create(&review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Review{}, ErrDuplicate
		}
		return models.Review{}, err
	}
	return review, nil
}

// Update replaces the user's own review.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID uint, in ReviewInput, images []*multipart.FileHeader) (models.Review, error) {
	review, err := s.reviews.FindByID(reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Review{}, ErrNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	if review.UserID != userID {
		return models.Review{}, ErrForbidden
	}

	urls, err := s.uploadAll(ctx, images)
	if err != nil {
		return models.Review{}, err
	}

	review.Rating = clampRating(in.Rating)
	review.Title = in.Title
	review.Comment = in.Comment
	if len(urls) > 0 {
		review.Images = encodeImageList(append(decodeImageList(review.Images), urls...))
	}

	if err := s.reviews.Update(&review); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// ListByProduct returns one page of a product's reviews.
func (s *ReviewService) ListByProduct(productID uint, page, limit int) ([]models.Review, orm.Pagination, error) {
	return s.reviews.ListByProduct(productID, page, limit)
}

// Delete removes the user's own review.
func (s *ReviewService) Delete(userID, reviewID uint) error {
	review, err := s.reviews.FindByID(reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return ErrForbidden
	}
	return s.reviews.Delete(reviewID)
}

func (s *ReviewService) uploadAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
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

		path := fmt.Sprintf("reviews/%d%s", time.Now().UnixNano(), filepath.Ext(fh.Filename))
		err = disk.PutStream(ctx, path, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, disk.URL(path))
	}
	return urls, nil
}

// clampRating coerces out-of-range ratings to the historical default of 1.
func clampRating(r int) int {
	if r < 1 || r > 5 {
		return 1
	}
	return r
}
