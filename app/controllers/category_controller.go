package controllers

import (
	"net/http"

	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/bind"
	"github.com/hydroline/hydroline/pkg/response"
)

// CategoryController serves category listings and the admin category CRUD.
type CategoryController struct {
	catalog *services.CatalogService
}

func NewCategoryController(catalog *services.CatalogService) *CategoryController {
	return &CategoryController{catalog: catalog}
}

// List returns all categories.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	out, err := c.catalog.Categories()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, out)
}

// Create adds a category from the admin multipart form.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CategoryInput
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cat, err := c.catalog.CreateCategory(r.Context(), req, formFile(r, "image"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, cat)
}

// Update replaces a category.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := paramUint(r, "categoryId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	var req services.CategoryInput
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cat, err := c.catalog.UpdateCategory(r.Context(), id, req, formFile(r, "image"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, cat)
}

// Delete removes a category.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := paramUint(r, "categoryId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := c.catalog.DeleteCategory(id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.SuccessMessage(w, "Category deleted", nil)
}
