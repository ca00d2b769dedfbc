package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/bind"
	"github.com/hydroline/hydroline/pkg/response"
)

// ProductController serves the public catalog and the admin product CRUD.
type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// List returns one catalog page, optionally filtered by ?categoryId=.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	products, pagination, err := c.catalog.List(queryUint(r, "categoryId"), page, limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Paginated(w, products, pagination)
}

// Get returns one product by id.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := paramUint(r, "productId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	p, err := c.catalog.Get(id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, p)
}

// GetByPath returns one product by URL slug.
func (c *ProductController) GetByPath(w http.ResponseWriter, r *http.Request) {
	p, err := c.catalog.GetByPath(chi.URLParam(r, "path"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, p)
}

// Create handles the admin multipart product form; "images" file parts are
// uploaded to the storage disk.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var req services.ProductInput
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.catalog.Create(r.Context(), req, formFiles(r, "images"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, p)
}

// Update replaces a product.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := paramUint(r, "productId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req services.ProductInput
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.catalog.Update(r.Context(), id, req, formFiles(r, "images"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, p)
}

// Delete removes a product.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := paramUint(r, "productId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := c.catalog.Delete(id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.SuccessMessage(w, "Product deleted", nil)
}

// formFiles returns the uploaded files for a multipart field, or nil for
// JSON requests.
func formFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

// formFile returns the first uploaded file for a multipart field.
func formFile(r *http.Request, field string) *multipart.FileHeader {
	files := formFiles(r, field)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
