package router

import (
	"time"

	"github.com/AbyssT34/Ecommerce-Shop/internal/config"
	"github.com/AbyssT34/Ecommerce-Shop/internal/handler"
	"github.com/AbyssT34/Ecommerce-Shop/internal/infra"
	"github.com/AbyssT34/Ecommerce-Shop/internal/middleware"
	"github.com/AbyssT34/Ecommerce-Shop/internal/repository"
	"github.com/AbyssT34/Ecommerce-Shop/internal/service"
	"github.com/AbyssT34/Ecommerce-Shop/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	productIngredientRepo := repository.NewProductIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, productIngredientRepo, movementRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	ingredientSvc := service.NewIngredientService(ingredientRepo)
	recipeSvc := service.NewRecipeService(recipeRepo, productIngredientRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, movementRepo, cartSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	ingredientsH := handler.NewIngredientsHandler(ingredientSvc)
	recipesH := handler.NewRecipesHandler(recipeSvc, cartSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	cartH := handler.NewCartHandler(cartSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Catalog browsing — no auth required
	r.GET("/v1/products", productsH.List)
	r.GET("/v1/products/:id", productsH.Get)
	r.GET("/v1/categories", categoriesH.List)
	r.GET("/v1/categories/:id", categoriesH.Get)
	r.GET("/v1/ingredients", ingredientsH.List)
	r.GET("/v1/ingredients/:id", ingredientsH.Get)
	r.GET("/v1/recipes", recipesH.List)
	r.GET("/v1/recipes/available", recipesH.Available)
	r.GET("/v1/recipes/:id", recipesH.Get)
	r.GET("/v1/recipes/:id/with-products", recipesH.WithProducts)
	// Cart-aware when a token is presented, body-driven otherwise.
	r.POST("/v1/recipes/suggest-from-cart", middleware.OptionalJWTAuth(cfg.JWTSecret), recipesH.SuggestFromCart)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		cart := v1.Group("/cart")
		{
			cart.GET("", cartH.Get)
			cart.POST("/items", cartH.Add)
			cart.PUT("/items/:id", cartH.UpdateItem)
			cart.DELETE("/items/:id", cartH.RemoveItem)
			cart.DELETE("", cartH.Clear)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.Get)
			orders.POST("/:id/cancel", ordersH.Cancel)
			// Admin-only lifecycle and reporting
			orders.PATCH("/:id/status", middleware.RequireRole(middleware.RoleAdmin), ordersH.UpdateStatus)
			orders.GET("/stats", middleware.RequireRole(middleware.RoleAdmin), ordersH.Stats)
		}

		// Catalog management — admin only
		admin := v1.Group("", middleware.RequireRole(middleware.RoleAdmin))
		{
			admin.POST("/products", productsH.Create)
			admin.PUT("/products/:id", productsH.Update)
			admin.DELETE("/products/:id", productsH.Delete)
			admin.PATCH("/products/:id/stock", productsH.AdjustStock)
			admin.GET("/products/:id/stock-movements", productsH.StockMovements)

			admin.POST("/categories", categoriesH.Create)
			admin.PUT("/categories/:id", categoriesH.Update)
			admin.DELETE("/categories/:id", categoriesH.Delete)

			admin.POST("/ingredients", ingredientsH.Create)

			admin.POST("/recipes", recipesH.Create)
			admin.PUT("/recipes/:id", recipesH.Update)
			admin.DELETE("/recipes/:id", recipesH.Delete)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
