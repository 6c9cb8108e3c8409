package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutrichef/nutrichef/backend/internal/middleware"
	"github.com/nutrichef/nutrichef/backend/internal/model"
	"github.com/nutrichef/nutrichef/backend/internal/service"
)

const testJWTSecret = "test-secret"

// testEnv bundles everything a handler test needs: the database, the token
// signer and an assembled router.
type testEnv struct {
	db     *gorm.DB
	auth   *service.AuthService
	router *gin.Engine
}

// setupTestDB opens an in-memory database and migrates the schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Recipe{}, &model.HistoryEntry{}, &model.Favorite{}))

	return db
}

// setupTestEnv assembles the routes the same way the production router does.
// The generation service may be nil when the test never hits /recipes/generate.
func setupTestEnv(t *testing.T, generationService *service.GenerationService) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)

	authService := service.NewAuthService(db, testJWTSecret)
	recipeService := service.NewRecipeService(db)
	historyService := service.NewHistoryService(db)
	favoriteService := service.NewFavoriteService(db)
	statsService := service.NewStatsService(db)
	imageService := service.NewImageService(nil)

	healthHandler := NewHealthHandler(db, nil)
	authHandler := NewAuthHandler(authService)
	recipeHandler := NewRecipeHandler(recipeService)
	historyHandler := NewHistoryHandler(historyService)
	favoriteHandler := NewFavoriteHandler(favoriteService)
	imageHandler := NewImageHandler(imageService, recipeService)
	statsHandler := NewStatsHandler(statsService)
	generateHandler := NewGenerateHandler(generationService)

	store := middleware.NewMemoryStore()
	apiLimiter := middleware.NewAPIRateLimiter(store)
	genLimiter := middleware.NewGenerationRateLimiter(store)

	r := gin.New()
	r.Use(middleware.ErrorHandler())

	r.GET("/health", healthHandler.Health)
	r.GET("/api/health", healthHandler.Health)

	public := r.Group("/api")
	public.Use(apiLimiter.Middleware())
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		public.GET("/recipes", recipeHandler.ListRecipes)
		public.GET("/recipes/:id", recipeHandler.GetRecipe)
	}

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(authService))
	protected.Use(apiLimiter.Middleware())
	{
		protected.POST("/recipes", recipeHandler.CreateRecipe)
		protected.PUT("/recipes/:id", recipeHandler.UpdateRecipe)
		protected.DELETE("/recipes/:id", middleware.RequireRole(model.RoleAdmin), recipeHandler.DeleteRecipe)
		protected.POST("/recipes/:id/image", imageHandler.UploadRecipeImage)

		protected.POST("/recipes/:id/favorite", favoriteHandler.AddFavorite)
		protected.DELETE("/recipes/:id/favorite", favoriteHandler.RemoveFavorite)
		protected.GET("/favorites", favoriteHandler.ListFavorites)

		protected.GET("/recipe-history", historyHandler.ListHistory)
		protected.POST("/recipe-history", historyHandler.CreateHistory)
		protected.PUT("/recipe-history/:id", historyHandler.UpdateHistory)

		protected.GET("/stats", statsHandler.GetStats)
	}

	generate := r.Group("/api")
	generate.Use(middleware.AuthMiddleware(authService))
	generate.Use(genLimiter.Middleware())
	{
		generate.POST("/recipes/generate", generateHandler.Generate)
	}

	return &testEnv{db: db, auth: authService, router: r}
}

// createTestUser inserts a user with the given role and returns it along with
// a signed token for it
func (e *testEnv) createTestUser(t *testing.T, role string) (*model.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8]),
		PasswordHash: string(hashed),
		Role:         role,
	}
	require.NoError(t, e.db.Create(user).Error)

	token, err := e.auth.TokenForUser(user)
	require.NoError(t, err)

	return user, token
}

// createTestRecipe inserts a recipe owned by userID
func (e *testEnv) createTestRecipe(t *testing.T, userID uuid.UUID, name string, calories, protein float64) *model.Recipe {
	t.Helper()

	recipe := &model.Recipe{
		ID:              uuid.New(),
		Name:            name,
		CuisineType:     "italian",
		Ingredients:     model.JSONBStringArray{"rice", "beans"},
		Instructions:    model.JSONBStringArray{"cook the rice", "add the beans"},
		Calories:        calories,
		Protein:         protein,
		Carbs:           50,
		Fat:             10,
		PrepTimeMinutes: 10,
		CookTimeMinutes: 20,
		Servings:        4,
		UserID:          userID,
	}
	require.NoError(t, e.db.Create(recipe).Error)

	return recipe
}

// performRequest runs one request through the router and records the response
func (e *testEnv) performRequest(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// envelope mirrors the response wrapper used by every endpoint
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
		Total  int64 `json:"total"`
	} `json:"pagination"`
}

// decodeEnvelope parses the response wrapper
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// decodeData parses the data portion of a response into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, out))
	return env
}
