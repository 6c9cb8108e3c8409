package router

import (
	"github.com/gin-gonic/gin"

	"github.com/nutrichef/nutrichef/backend/config"
	"github.com/nutrichef/nutrichef/backend/internal/api"
	"github.com/nutrichef/nutrichef/backend/internal/middleware"
	"github.com/nutrichef/nutrichef/backend/internal/model"
)

// Handlers bundles the API handlers wired into the router
type Handlers struct {
	Health   *api.HealthHandler
	Auth     *api.AuthHandler
	Recipe   *api.RecipeHandler
	Generate *api.GenerateHandler
	History  *api.HistoryHandler
	Favorite *api.FavoriteHandler
	Image    *api.ImageHandler
	Stats    *api.StatsHandler
}

// Setup configures the application routes.
//
// The general API group is limited to 100 requests per client per 15-minute
// window, the generation route to 10. On authenticated groups the auth
// middleware runs before the limiter so the admin exemption can see the role
// claim; public groups are limited purely by client IP.
func Setup(cfg *config.Config, h *Handlers, validator middleware.TokenValidator, store middleware.CounterStore) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigin))

	apiLimiter := middleware.NewAPIRateLimiter(store)
	genLimiter := middleware.NewGenerationRateLimiter(store)

	router.GET("/health", h.Health.Health)
	router.GET("/api/health", h.Health.Health)

	// Public routes
	public := router.Group("/api")
	public.Use(apiLimiter.Middleware())
	{
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)
		public.GET("/recipes", h.Recipe.ListRecipes)
		public.GET("/recipes/:id", h.Recipe.GetRecipe)
	}

	// Authenticated routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(validator))
	protected.Use(apiLimiter.Middleware())
	{
		protected.POST("/recipes", h.Recipe.CreateRecipe)
		protected.PUT("/recipes/:id", h.Recipe.UpdateRecipe)
		protected.DELETE("/recipes/:id", middleware.RequireRole(model.RoleAdmin), h.Recipe.DeleteRecipe)
		protected.POST("/recipes/:id/image", h.Image.UploadRecipeImage)

		protected.POST("/recipes/:id/favorite", h.Favorite.AddFavorite)
		protected.DELETE("/recipes/:id/favorite", h.Favorite.RemoveFavorite)
		protected.GET("/favorites", h.Favorite.ListFavorites)

		protected.GET("/recipe-history", h.History.ListHistory)
		protected.POST("/recipe-history", h.History.CreateHistory)
		protected.PUT("/recipe-history/:id", h.History.UpdateHistory)

		protected.GET("/stats", h.Stats.GetStats)
	}

	// Generation gets its own, tighter ceiling
	generate := router.Group("/api")
	generate.Use(middleware.AuthMiddleware(validator))
	generate.Use(genLimiter.Middleware())
	{
		generate.POST("/recipes/generate", h.Generate.Generate)
	}

	return router
}
