package router

import (
	"github.com/gin-gonic/gin"

	"github.com/shopline/backend/internal/infrastructure/auth"
	"github.com/shopline/backend/internal/interfaces/http/handler"
	"github.com/shopline/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Address  *handler.AddressHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Brand    *handler.BrandHandler
	Banner   *handler.BannerHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Review   *handler.ReviewHandler
	Search   *handler.SearchHandler
}

// Router mounts the API route tree on a gin engine
type Router struct {
	engine   *gin.Engine
	jwt      *auth.JWTService
	handlers Handlers
}

// New creates a Router
func New(engine *gin.Engine, jwt *auth.JWTService, handlers Handlers) *Router {
	return &Router{engine: engine, jwt: jwt, handlers: handlers}
}

// Setup registers all routes. The tree splits into a public group, an
// authenticated customer group, and an admin group.
func (r *Router) Setup() {
	h := r.handlers

	r.engine.GET("/health", h.System.Health)
	r.engine.GET("/ready", h.System.Ready)

	api := r.engine.Group("/api/v1")

	// public routes, OptionalAuth personalizes search history
	public := api.Group("")
	public.Use(middleware.OptionalAuth(r.jwt))
	{
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)
		public.POST("/auth/refresh", h.Auth.Refresh)
		public.POST("/auth/forgot-password", h.Auth.ForgotPassword)
		public.POST("/auth/verify-otp", h.Auth.VerifyOTP)
		public.POST("/auth/resend-otp", h.Auth.ResendOTP)
		public.POST("/auth/reset-password", h.Auth.ResetPassword)

		public.GET("/products", h.Product.List)
		public.GET("/products/:id", h.Product.Get)
		public.GET("/products/slug/:slug", h.Product.GetBySlug)
		public.GET("/products/:id/reviews", h.Review.ListByProduct)

		public.GET("/categories", h.Category.List)
		public.GET("/categories/:id", h.Category.Get)
		public.GET("/categories/slug/:slug", h.Category.GetBySlug)

		public.GET("/brands", h.Brand.List)
		public.GET("/brands/:id", h.Brand.Get)

		public.GET("/banners", h.Banner.Active)

		public.GET("/search", h.Search.Search)
		public.GET("/search/suggestions", h.Search.Suggestions)
	}

	// routes for signed-in customers
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(r.jwt))
	{
		authed.POST("/auth/logout", h.Auth.Logout)

		authed.GET("/users/me", h.User.Profile)
		authed.PUT("/users/me", h.User.UpdateProfile)
		authed.PUT("/users/me/password", h.User.ChangePassword)
		authed.POST("/users/me/avatar-upload-url", h.User.AvatarUploadURL)
		authed.POST("/users/me/avatar", h.User.ConfirmAvatar)

		authed.GET("/addresses", h.Address.List)
		authed.POST("/addresses", h.Address.Create)
		authed.PUT("/addresses/:id", h.Address.Update)
		authed.POST("/addresses/:id/default", h.Address.SetDefault)
		authed.DELETE("/addresses/:id", h.Address.Delete)

		authed.GET("/cart", h.Cart.Get)
		authed.GET("/cart/summary", h.Cart.Summary)
		authed.POST("/cart/items", h.Cart.AddItem)
		authed.PUT("/cart/items/:id", h.Cart.UpdateItem)
		authed.DELETE("/cart/items/:id", h.Cart.RemoveItem)
		authed.DELETE("/cart", h.Cart.Clear)

		authed.POST("/orders/checkout", h.Order.Checkout)
		authed.POST("/orders", h.Order.Create)
		authed.GET("/orders", h.Order.ListMine)
		authed.GET("/orders/:id", h.Order.Get)
		authed.POST("/orders/:id/cancel", h.Order.Cancel)

		authed.POST("/reviews", h.Review.Submit)
		authed.PUT("/reviews/:id", h.Review.Update)

		authed.POST("/search/history", h.Search.RecordSearch)
		authed.GET("/search/history", h.Search.History)
		authed.DELETE("/search/history", h.Search.ClearHistory)
	}

	// admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(r.jwt), middleware.RequireAdmin())
	{
		admin.GET("/users", h.User.List)
		admin.GET("/users/:id", h.User.Get)
		admin.POST("/users/:id/lock", h.User.Lock)
		admin.POST("/users/:id/unlock", h.User.Unlock)

		admin.GET("/products", h.Product.ListAll)
		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
		admin.POST("/products/:id/activate", h.Product.Activate)
		admin.POST("/products/:id/deactivate", h.Product.Deactivate)
		admin.POST("/products/upload-url", h.Product.ImageUploadURL)
		admin.POST("/products/:id/images", h.Product.ConfirmImage)

		admin.POST("/categories", h.Category.Create)
		admin.PUT("/categories/:id", h.Category.Rename)
		admin.DELETE("/categories/:id", h.Category.Delete)

		admin.POST("/brands", h.Brand.Create)
		admin.PUT("/brands/:id", h.Brand.Update)
		admin.DELETE("/brands/:id", h.Brand.Delete)

		admin.GET("/banners", h.Banner.List)
		admin.POST("/banners", h.Banner.Create)
		admin.PUT("/banners/:id", h.Banner.Update)
		admin.POST("/banners/:id/toggle", h.Banner.Toggle)
		admin.DELETE("/banners/:id", h.Banner.Delete)

		admin.GET("/orders", h.Order.ListAll)
		admin.GET("/orders/:id", h.Order.Get)
		admin.PUT("/orders/:id/status", h.Order.UpdateStatus)

		admin.GET("/reviews", h.Review.ListAll)
		admin.POST("/reviews/:id/reply", h.Review.Reply)
		admin.POST("/reviews/:id/visibility", h.Review.ToggleHidden)
	}
}
