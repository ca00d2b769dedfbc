package controllers

import (
	"net/http"

	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/bind"
	"github.com/hydroline/hydroline/pkg/response"
)

// ReviewController manages product reviews.
type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// Create accepts a multipart review form with optional "images" file parts.
func (c *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req services.ReviewInput
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.reviews.Create(r.Context(), uid, req, formFiles(r, "images"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, review)
}

// List returns one page of reviews for ?productId=.
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	productID := queryUint(r, "productId")
	if productID == 0 {
		response.Error(w, http.StatusBadRequest, "The productId query parameter is required")
		return
	}

	page, limit := pageParams(r)
	reviews, pagination, err := c.reviews.ListByProduct(productID, page, limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Paginated(w, reviews, pagination)
}

// Update replaces the caller's own review.
func (c *ReviewController) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	reviewID, err := paramUint(r, "reviewId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	var req services.ReviewInput
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.reviews.Update(r.Context(), uid, reviewID, req, formFiles(r, "images"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, review)
}

// Delete removes the caller's own review.
func (c *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	reviewID, err := paramUint(r, "reviewId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	if err := c.reviews.Delete(uid, reviewID); err != nil {
		respondErr(w, r, err)
		return
	}
	response.SuccessMessage(w, "Review deleted", nil)
}
