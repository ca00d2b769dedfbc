package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/bind"
	"github.com/hydroline/hydroline/pkg/response"
)

// ContentController serves the CMS documents: blogs, testimonials, policies,
// SEO entries and the landing-page singletons.
type ContentController struct {
	content *services.ContentService
}

func NewContentController(content *services.ContentService) *ContentController {
	return &ContentController{content: content}
}

// Blogs returns one page of blog posts.
func (c *ContentController) Blogs(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	blogs, pagination, err := c.content.Blogs(page, limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Paginated(w, blogs, pagination)
}

// BlogBySlug returns one post.
func (c *ContentController) BlogBySlug(w http.ResponseWriter, r *http.Request) {
	blog, err := c.content.BlogBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, blog)
}

// CreateBlog adds a post from the admin form ("cover" file part optional).
func (c *ContentController) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req services.BlogInput
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	blog, err := c.content.CreateBlog(r.Context(), req, formFile(r, "cover"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, blog)
}

// UpdateBlog replaces a post.
func (c *ContentController) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, err := paramUint(r, "blogId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blog id")
		return
	}

	var req services.BlogInput
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	blog, err := c.content.UpdateBlog(r.Context(), id, req, formFile(r, "cover"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, blog)
}

// DeleteBlog removes a post.
func (c *ContentController) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, err := paramUint(r, "blogId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blog id")
		return
	}

	if err := c.content.DeleteBlog(id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.SuccessMessage(w, "Blog deleted", nil)
}

// Testimonials returns all testimonials.
func (c *ContentController) Testimonials(w http.ResponseWriter, r *http.Request) {
	out, err := c.content.Testimonials()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, out)
}

// CreateTestimonial adds a testimonial.
func (c *ContentController) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req services.TestimonialInput
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	t, err := c.content.CreateTestimonial(r.Context(), req, formFile(r, "image"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, t)
}

// DeleteTestimonial removes a testimonial.
func (c *ContentController) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := paramUint(r, "testimonialId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid testimonial id")
		return
	}

	if err := c.content.DeleteTestimonial(id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.SuccessMessage(w, "Testimonial deleted", nil)
}

// Policies returns all policy pages.
func (c *ContentController) Policies(w http.ResponseWriter, r *http.Request) {
	out, err := c.content.Policies()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, out)
}

// Policy returns the policy page for a category.
func (c *ContentController) Policy(w http.ResponseWriter, r *http.Request) {
	p, err := c.content.Policy(chi.URLParam(r, "category"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, p)
}

// UpsertPolicy creates or replaces the policy for its category.
func (c *ContentController) UpsertPolicy(w http.ResponseWriter, r *http.Request) {
	var req services.PolicyInput
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.content.UpsertPolicy(req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, p)
}

// Seo returns the SEO entry for ?path=.
func (c *ContentController) Seo(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		response.Error(w, http.StatusBadRequest, "The path query parameter is required")
		return
	}

	entry, err := c.content.Seo(path)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, entry)
}

// UpsertSeo creates or replaces the SEO entry for its path.
func (c *ContentController) UpsertSeo(w http.ResponseWriter, r *http.Request) {
	var req services.SeoInput
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	entry, err := c.content.UpsertSeo(req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, entry)
}

// About returns the about-page singleton.
func (c *ContentController) About(w http.ResponseWriter, r *http.Request) {
	a, err := c.content.About()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, a)
}

type aboutRequest struct {
	Heading string `json:"heading" validate:"required,max=255"`
	Body    string `json:"body" validate:"required"`
}

// SaveAbout upserts the about page ("image" file part optional).
func (c *ContentController) SaveAbout(w http.ResponseWriter, r *http.Request) {
	var req aboutRequest
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	a, err := c.content.SaveAbout(r.Context(), req.Heading, req.Body, formFile(r, "image"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, a)
}

// ContactPage returns the contact-page singleton.
func (c *ContentController) ContactPage(w http.ResponseWriter, r *http.Request) {
	out, err := c.content.ContactPage()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, out)
}

type contactRequest struct {
	Email   string `json:"email" validate:"nullable,email"`
	Phone   string `json:"phone" validate:"nullable,max=50"`
	Address string `json:"address"`
	MapURL  string `json:"mapUrl" validate:"nullable,url"`
}

// SaveContact upserts the contact page.
func (c *ContentController) SaveContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	out, err := c.content.SaveContact(models.Contact{
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		MapURL:  req.MapURL,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, out)
}

// Hero returns the hero-banner singleton.
func (c *ContentController) Hero(w http.ResponseWriter, r *http.Request) {
	h, err := c.content.Hero()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, h)
}

type heroRequest struct {
	Heading    string `json:"heading" validate:"required,max=255"`
	Subheading string `json:"subheading" validate:"nullable,max=255"`
	CTALabel   string `json:"ctaLabel" validate:"nullable,max=100"`
	CTALink    string `json:"ctaLink" validate:"nullable,max=512"`
}

// SaveHero upserts the hero banner ("image" file part optional).
func (c *ContentController) SaveHero(w http.ResponseWriter, r *http.Request) {
	var req heroRequest
	errs, err := bind.Form(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	h, err := c.content.SaveHero(r.Context(), models.Hero{
		Heading:    req.Heading,
		Subheading: req.Subheading,
		CTALabel:   req.CTALabel,
		CTALink:    req.CTALink,
	}, formFile(r, "image"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, h)
}

// Offer returns the promotional-strip singleton.
func (c *ContentController) Offer(w http.ResponseWriter, r *http.Request) {
	o, err := c.content.Offer()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, o)
}

type offerRequest struct {
	Text     string `json:"text" validate:"required,max=255"`
	Link     string `json:"link" validate:"nullable,max=512"`
	IsActive bool   `json:"isActive"`
}

// SaveOffer upserts the promotional strip.
func (c *ContentController) SaveOffer(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	o, err := c.content.SaveOffer(models.Offer{Text: req.Text, Link: req.Link, IsActive: req.IsActive})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, o)
}
