// Package routes wires every HTTP endpoint to its controller.
package routes

import (
	"net/http"

	"github.com/hydroline/hydroline/app/controllers"
	"github.com/hydroline/hydroline/pkg/metrics"
	"github.com/hydroline/hydroline/pkg/middleware"
	"github.com/hydroline/hydroline/pkg/rbac"
	"github.com/hydroline/hydroline/pkg/response"
	"github.com/hydroline/hydroline/pkg/router"
	"github.com/hydroline/hydroline/pkg/ws"
)

// Controllers bundles everything RegisterAPI mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Address  *controllers.AddressController
	Product  *controllers.ProductController
	Category *controllers.CategoryController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Payment  *controllers.PaymentController
	Review   *controllers.ReviewController
	Content  *controllers.ContentController
	GraphQL  *controllers.GraphQLController
	OrderHub *ws.Hub
}

// RegisterAPI mounts all routes. Admin routes are guarded by the role check;
// everything under the protected group requires a valid token.
func RegisterAPI(r *router.Router, c Controllers) {
	r.Get("/healthz", "ops.health", func(w http.ResponseWriter, _ *http.Request) {
		response.SuccessMessage(w, "ok", nil)
	})
	r.HandleFunc("/metrics", metrics.Handler().ServeHTTP)

	api := r.Group("/api")

	// Public storefront reads.
	api.Post("/auth/register", "auth.register", c.Auth.Register)
	api.Post("/auth/login", "auth.login", c.Auth.Login)
	api.Get("/products", "products.list", c.Product.List)
	api.Get("/products/{productId}", "products.get", c.Product.Get)
	api.Get("/products/path/{path}", "products.get_by_path", c.Product.GetByPath)
	api.Get("/categories", "categories.list", c.Category.List)
	api.Get("/review", "reviews.list", c.Review.List)
	api.Post("/graphql", "catalog.graphql", c.GraphQL.Query)

	// Public CMS reads.
	api.Get("/blogs", "blogs.list", c.Content.Blogs)
	api.Get("/blogs/{slug}", "blogs.get", c.Content.BlogBySlug)
	api.Get("/testimonials", "testimonials.list", c.Content.Testimonials)
	api.Get("/pages/policy", "pages.policies", c.Content.Policies)
	api.Get("/pages/policy/{category}", "pages.policy", c.Content.Policy)
	api.Get("/pages/seo", "pages.seo", c.Content.Seo)
	api.Get("/pages/aboutpage", "pages.about", c.Content.About)
	api.Get("/pages/contactpage", "pages.contact", c.Content.ContactPage)
	api.Get("/pages/hero", "pages.hero", c.Content.Hero)
	api.Get("/pages/offer", "pages.offer", c.Content.Offer)

	// Authenticated customer routes.
	protected := api.Group("", middleware.Auth)
	protected.Get("/auth/profile", "auth.profile", c.Auth.Profile)

	protected.Get("/address", "address.list", c.Address.List)
	protected.Post("/address", "address.create", c.Address.Create)
	protected.Put("/address/{addressId}", "address.update", c.Address.Update)
	protected.Delete("/address/{addressId}", "address.delete", c.Address.Delete)

	protected.Get("/cart", "cart.get", c.Cart.Get)
	protected.Post("/cart", "cart.add", c.Cart.Add)
	protected.Patch("/cart/items/{itemId}", "cart.update_item", c.Cart.UpdateItem)
	protected.Delete("/cart/items/{itemId}", "cart.delete_item", c.Cart.DeleteItem)
	protected.Delete("/cart", "cart.clear", c.Cart.Clear)

	protected.Post("/orders", "orders.create", c.Order.Create)
	protected.Get("/orders", "orders.list", c.Order.List)
	protected.Get("/orders/{orderId}", "orders.get", c.Order.Get)
	protected.Patch("/orders/{orderId}/items/{itemId}/cancel", "orders.cancel_item", c.Order.CancelItem)

	protected.Post("/razorpay/order", "payments.create_order", c.Payment.CreateGatewayOrder)
	protected.Post("/razorpay/verify", "payments.verify", c.Payment.Verify)

	protected.Post("/review", "reviews.create", c.Review.Create)
	protected.Put("/review/{reviewId}", "reviews.update", c.Review.Update)
	protected.Delete("/review/{reviewId}", "reviews.delete", c.Review.Delete)

	// Admin console.
	admin := api.Group("/admin", middleware.Auth, rbac.RequireRole(rbac.RoleAdmin))

	admin.Post("/products", "admin.products.create", c.Product.Create)
	admin.Put("/products/{productId}", "admin.products.update", c.Product.Update)
	admin.Delete("/products/{productId}", "admin.products.delete", c.Product.Delete)

	admin.Post("/categories", "admin.categories.create", c.Category.Create)
	admin.Put("/categories/{categoryId}", "admin.categories.update", c.Category.Update)
	admin.Delete("/categories/{categoryId}", "admin.categories.delete", c.Category.Delete)

	admin.Get("/orders", "admin.orders.list", c.Order.AdminList)
	admin.Patch("/orders/{orderId}/items/{itemId}/status", "admin.orders.item_status", c.Order.UpdateItemStatus)

	admin.Post("/blogs", "admin.blogs.create", c.Content.CreateBlog)
	admin.Put("/blogs/{blogId}", "admin.blogs.update", c.Content.UpdateBlog)
	admin.Delete("/blogs/{blogId}", "admin.blogs.delete", c.Content.DeleteBlog)

	admin.Post("/testimonials", "admin.testimonials.create", c.Content.CreateTestimonial)
	admin.Delete("/testimonials/{testimonialId}", "admin.testimonials.delete", c.Content.DeleteTestimonial)

	admin.Put("/pages/policy", "admin.pages.policy", c.Content.UpsertPolicy)
	admin.Put("/pages/seo", "admin.pages.seo", c.Content.UpsertSeo)
	admin.Put("/pages/aboutpage", "admin.pages.about", c.Content.SaveAbout)
	admin.Put("/pages/contactpage", "admin.pages.contact", c.Content.SaveContact)
	admin.Put("/pages/hero", "admin.pages.hero", c.Content.SaveHero)
	admin.Put("/pages/offer", "admin.pages.offer", c.Content.SaveOffer)

	// Admin live order feed.
	r.Get("/ws/admin/orders", "admin.orders.feed", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, c.OrderHub)
	}, middleware.Auth, rbac.RequireRole(rbac.RoleAdmin))
}
