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

// ContentService manages the CMS documents behind the admin console.
type ContentService struct {
	content *repositories.ContentRepository
	storage *storage.Manager
}

func NewContentService(content *repositories.ContentRepository, store *storage.Manager) *ContentService {
	return &ContentService{content: content, storage: store}
}

// BlogInput is the validated body of blog create/update requests.
type BlogInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Slug    string `json:"slug" validate:"required,alpha_dash"`
	Excerpt string `json:"excerpt"`
	Body    string `json:"body" validate:"required"`
	Author  string `json:"author"`
}

// Blogs returns one page of posts.
func (s *ContentService) Blogs(page, limit int) ([]models.Blog, orm.Pagination, error) {
	return s.content.Blogs(page, limit)
}

// BlogBySlug returns one post by slug.
func (s *ContentService) BlogBySlug(slug string) (models.Blog, error) {
	b, err := s.content.FindBlogBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Blog{}, ErrNotFound
	}
	return b, err
}

// CreateBlog persists a new post; duplicate slugs return ErrDuplicate.
func (s *ContentService) CreateBlog(ctx context.Context, in BlogInput, cover *multipart.FileHeader) (models.Blog, error) {
	b := models.Blog{
		Title:   in.Title,
		Slug:    in.Slug,
		Excerpt: in.Excerpt,
		Body:    in.Body,
		Author:  in.Author,
	}

	url, err := s.uploadOne(ctx, "blogs", cover)
	if err != nil {
		return models.Blog{}, err
	}
	b.Cover = url

	if err := s.content.CreateBlog(&b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Blog{}, ErrDuplicate
		}
		return models.Blog{}, err
	}
	return b, nil
}

// UpdateBlog replaces a post's fields.
func (s *ContentService) UpdateBlog(ctx context.Context, id uint, in BlogInput, cover *multipart.FileHeader) (models.Blog, error) {
	b, err := s.findBlog(id)
	if err != nil {
		return models.Blog{}, err
	}

	b.Title = in.Title
	b.Slug = in.Slug
	b.Excerpt = in.Excerpt
	b.Body = in.Body
	b.Author = in.Author

	if cover != nil {
		url, err := s.uploadOne(ctx, "blogs", cover)
		if err != nil {
			return models.Blog{}, err
		}
		b.Cover = url
	}

	if err := s.content.UpdateBlog(&b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Blog{}, ErrDuplicate
		}
		return models.Blog{}, err
	}
	return b, nil
}

// DeleteBlog removes a post by id.
func (s *ContentService) DeleteBlog(id uint) error {
	if _, err := s.findBlog(id); err != nil {
		return err
	}
	return s.content.DeleteBlog(id)
}

// TestimonialInput is the validated body of testimonial requests.
type TestimonialInput struct {
	Author  string `json:"author" validate:"required,max=255"`
	Company string `json:"company"`
	Quote   string `json:"quote" validate:"required"`
}

// Testimonials returns all testimonials.
func (s *ContentService) Testimonials() ([]models.Testimonial, error) {
	return s.content.Testimonials()
}

// CreateTestimonial persists a new testimonial.
func (s *ContentService) CreateTestimonial(ctx context.Context, in TestimonialInput, image *multipart.FileHeader) (models.Testimonial, error) {
	t := models.Testimonial{Author: in.Author, Company: in.Company, Quote: in.Quote}

	url, err := s.uploadOne(ctx, "testimonials", image)
	if err != nil {
		return models.Testimonial{}, err
	}
	t.Image = url

	if err := s.content.CreateTestimonial(&t); err != nil {
		return models.Testimonial{}, err
	}
	return t, nil
}

// DeleteTestimonial removes a testimonial by id.
func (s *ContentService) DeleteTestimonial(id uint) error {
	return s.content.DeleteTestimonial(id)
}

// PolicyInput is the validated body of policy upserts.
type PolicyInput struct {
	Category string `json:"category" validate:"required,alpha_dash"`
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

// Policies returns all policy pages.
func (s *ContentService) Policies() ([]models.Policy, error) {
	return s.content.Policies()
}

// Policy returns the policy page for a category.
func (s *ContentService) Policy(category string) (models.Policy, error) {
	p, err := s.content.FindPolicy(category)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Policy{}, ErrNotFound
	}
	return p, err
}

// UpsertPolicy creates or replaces the policy for its category.
func (s *ContentService) UpsertPolicy(in PolicyInput) (models.Policy, error) {
	p := models.Policy{Category: in.Category, Title: in.Title, Body: in.Body}
	if err := s.content.UpsertPolicy(&p); err != nil {
		return models.Policy{}, err
	}
	return p, nil
}

// SeoInput is the validated body of SEO upserts.
type SeoInput struct {
	Path        string `json:"path" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// Seo returns the SEO entry for a path.
func (s *ContentService) Seo(path string) (models.Seo, error) {
	e, err := s.content.FindSeo(path)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Seo{}, ErrNotFound
	}
	return e, err
}

// UpsertSeo creates or replaces the SEO entry for its path.
func (s *ContentService) UpsertSeo(in SeoInput) (models.Seo, error) {
	e := models.Seo{Path: in.Path, Title: in.Title, Description: in.Description, Keywords: in.Keywords}
	if err := s.content.UpsertSeo(&e); err != nil {
		return models.Seo{}, err
	}
	return e, nil
}

// About returns the about-page singleton.
func (s *ContentService) About() (models.AboutPage, error) {
	var a models.AboutPage
	err := s.content.Singleton(&a)
	return a, err
}

// SaveAbout upserts the about-page singleton.
func (s *ContentService) SaveAbout(ctx context.Context, heading, body string, image *multipart.FileHeader) (models.AboutPage, error) {
	a, err := s.About()
	if err != nil {
		return models.AboutPage{}, err
	}

	a.Heading = heading
	a.Body = body
	if image != nil {
		url, err := s.uploadOne(ctx, "pages", image)
		if err != nil {
			return models.AboutPage{}, err
		}
		a.Image = url
	}
	if err := s.content.SaveSingleton(&a); err != nil {
		return models.AboutPage{}, err
	}
	return a, nil
}

// ContactPage returns the contact-page singleton.
func (s *ContentService) ContactPage() (models.Contact, error) {
	var c models.Contact
	err := s.content.Singleton(&c)
	return c, err
}

// SaveContact upserts the contact-page singleton.
func (s *ContentService) SaveContact(in models.Contact) (models.Contact, error) {
	c, err := s.ContactPage()
	if err != nil {
		return models.Contact{}, err
	}
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.MapURL = in.MapURL
	if err := s.content.SaveSingleton(&c); err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

// Hero returns the hero-banner singleton.
func (s *ContentService) Hero() (models.Hero, error) {
	var h models.Hero
	err := s.content.Singleton(&h)
	return h, err
}

// SaveHero upserts the hero-banner singleton.
func (s *ContentService) SaveHero(ctx context.Context, in models.Hero, image *multipart.FileHeader) (models.Hero, error) {
	h, err := s.Hero()
	if err != nil {
		return models.Hero{}, err
	}
	h.Heading = in.Heading
	h.Subheading = in.Subheading
	h.CTALabel = in.CTALabel
	h.CTALink = in.CTALink
	if image != nil {
		url, err := s.uploadOne(ctx, "pages", image)
		if err != nil {
			return models.Hero{}, err
		}
		h.Image = url
	}
	if err := s.content.SaveSingleton(&h); err != nil {
		return models.Hero{}, err
	}
	return h, nil
}

// Offer returns the promotional-strip singleton.
func (s *ContentService) Offer() (models.Offer, error) {
	var o models.Offer
	err := s.content.Singleton(&o)
	return o, err
}

// SaveOffer upserts the promotional-strip singleton.
func (s *ContentService) SaveOffer(in models.Offer) (models.Offer, error) {
	o, err := s.Offer()
	if err != nil {
		return models.Offer{}, err
	}
	o.Text = in.Text
	o.Link = in.Link
	o.IsActive = in.IsActive
	if err := s.content.SaveSingleton(&o); err != nil {
		return models.Offer{}, err
	}
	return o, nil
}

func (s *ContentService) findBlog(id uint) (models.Blog, error) {
	b, err := s.content.FindBlog(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Blog{}, ErrNotFound
	}
	return b, err
}

func (s *ContentService) uploadOne(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	if s.storage == nil || fh == nil {
		return "", nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	disk := s.storage.Default()
	path := fmt.Sprintf("%s/%d%s", dir, time.Now().UnixNano(), filepath.Ext(fh.Filename))
	if err := disk.PutStream(ctx, path, f); err != nil {
		return "", err
	}
	return disk.URL(path), nil
}
