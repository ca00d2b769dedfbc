package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/pkg/orm"
)

// ContentRepository handles the CMS documents: blogs, testimonials, policies,
// SEO entries and the landing-page singletons.
type ContentRepository struct {
	q *orm.Query
}

func NewContentRepository(q *orm.Query) *ContentRepository {
	return &ContentRepository{q: q}
}

// Blogs returns one page of blog posts, newest first.
func (r *ContentRepository) Blogs(page, limit int) ([]models.Blog, orm.Pagination, error) {
	var out []models.Blog
	pagination, err := r.q.Model(&models.Blog{}).Order("id desc").GetWithPagination(&out, page, limit)
	return out, pagination, err
}

// FindBlog looks up a blog post by primary key.
func (r *ContentRepository) FindBlog(id uint) (models.Blog, error) {
	var b models.Blog
	err := r.q.Model(&models.Blog{}).Where("id = ?", id).First(&b)
	return b, err
}

// FindBlogBySlug looks up a blog post by its URL slug.
func (r *ContentRepository) FindBlogBySlug(slug string) (models.Blog, error) {
	var b models.Blog
	err := r.q.Model(&models.Blog{}).Where("slug = ?", slug).First(&b)
	return b, err
}

// CreateBlog persists a new blog post.
func (r *ContentRepository) CreateBlog(b *models.Blog) error { return r.q.Create(b) }

// UpdateBlog persists changes to a blog post.
func (r *ContentRepository) UpdateBlog(b *models.Blog) error { return r.q.Save(b) }

// DeleteBlog removes a blog post by id.
func (r *ContentRepository) DeleteBlog(id uint) error { return r.q.Delete(&models.Blog{}, id) }

// Testimonials returns all testimonials.
func (r *ContentRepository) Testimonials() ([]models.Testimonial, error) {
	var out []models.Testimonial
	err := r.q.Model(&models.Testimonial{}).Order("id desc").Get(&out)
	return out, err
}

// CreateTestimonial persists a new testimonial.
func (r *ContentRepository) CreateTestimonial(t *models.Testimonial) error { return r.q.Create(t) }

// DeleteTestimonial removes a testimonial by id.
func (r *ContentRepository) DeleteTestimonial(id uint) error {
	return r.q.Delete(&models.Testimonial{}, id)
}

// Policies returns all policy pages.
func (r *ContentRepository) Policies() ([]models.Policy, error) {
	var out []models.Policy
	err := r.q.Model(&models.Policy{}).Order("category").Get(&out)
	return out, err
}

// UpsertPolicy creates or replaces the policy for its category.
func (r *ContentRepository) UpsertPolicy(p *models.Policy) error {
	var existing models.Policy
	err := r.q.Model(&models.Policy{}).Where("category = ?", p.Category).First(&existing)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.q.Create(p)
	}
	if err != nil {
		return err
	}
	existing.Title = p.Title
	existing.Body = p.Body
	*p = existing
	return r.q.Save(p)
}

// FindPolicy looks up the policy page for a category.
func (r *ContentRepository) FindPolicy(category string) (models.Policy, error) {
	var p models.Policy
	err := r.q.Model(&models.Policy{}).Where("category = ?", category).First(&p)
	return p, err
}

// UpsertSeo creates or replaces the SEO entry for its path.
func (r *ContentRepository) UpsertSeo(s *models.Seo) error {
	var existing models.Seo
	err := r.q.Model(&models.Seo{}).Where("path = ?", s.Path).First(&existing)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.q.Create(s)
	}
	if err != nil {
		return err
	}
	existing.Title = s.Title
	existing.Description = s.Description
	existing.Keywords = s.Keywords
	*s = existing
	return r.q.Save(s)
}

// FindSeo looks up the SEO entry for a path.
func (r *ContentRepository) FindSeo(path string) (models.Seo, error) {
	var s models.Seo
	err := r.q.Model(&models.Seo{}).Where("path = ?", path).First(&s)
	return s, err
}

// Singleton reads the single row of dest's model, leaving dest zero-valued
// when none exists yet.
func (r *ContentRepository) Singleton(dest interface{}) error {
	err := r.q.Model(dest).First(dest)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// SaveSingleton creates or updates the single row of v's model.
func (r *ContentRepository) SaveSingleton(v interface{}) error {
	return r.q.Save(v)
}
