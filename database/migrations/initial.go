package migrations

import (
	"gorm.io/gorm"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/pkg/migration"
)

func init() {
	migration.Register("20260115000000_create_users_tables", &CreateUsersTables{})
	migration.Register("20260115000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260115000002_create_cart_tables", &CreateCartTables{})
	migration.Register("20260115000003_create_order_tables", &CreateOrderTables{})
	migration.Register("20260115000004_create_reviews_table", &CreateReviewsTable{})
	migration.Register("20260115000005_create_content_tables", &CreateContentTables{})
}

// -------- 0001: users + addresses --------

type CreateUsersTables struct{}

func (m *CreateUsersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Address{})
}

func (m *CreateUsersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("addresses", "users")
}

// -------- 0002: categories + products --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Product{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products", "categories")
}

// -------- 0003: carts + cart items --------

type CreateCartTables struct{}

func (m *CreateCartTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Cart{}, &models.CartItem{})
}

func (m *CreateCartTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items", "carts")
}

// -------- 0004: orders + order items --------

type CreateOrderTables struct{}

func (m *CreateOrderTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrderTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

// -------- 0005: reviews --------

type CreateReviewsTable struct{}

func (m *CreateReviewsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Review{})
}

func (m *CreateReviewsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("reviews")
}

// -------- 0006: CMS content --------

type CreateContentTables struct{}

func (m *CreateContentTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Testimonial{},
		&models.Blog{},
		&models.Policy{},
		&models.Seo{},
		&models.Contact{},
		&models.AboutPage{},
		&models.Hero{},
		&models.Offer{},
	)
}

func (m *CreateContentTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		"offers", "heroes", "about_pages", "contacts",
		"seos", "policies", "blogs", "testimonials",
	)
}
