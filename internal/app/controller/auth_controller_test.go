package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/internal/db"
	"github.com/shopverse/shopverse-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGuestCartStore satisfies repository.GuestCartStore without Redis
type stubGuestCartStore struct {
	carts map[string]*model.GuestCart
}

func newStubGuestCartStore() *stubGuestCartStore {
	return &stubGuestCartStore{carts: make(map[string]*model.GuestCart)}
}

func (s *stubGuestCartStore) Get(_ context.Context, sessionID string) (*model.GuestCart, error) {
	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, repository.ErrGuestCartNotFound
	}
	return cart, nil
}

func (s *stubGuestCartStore) Save(_ context.Context, cart *model.GuestCart) error {
	s.carts[cart.SessionID] = cart
	return nil
}

func (s *stubGuestCartStore) Delete(_ context.Context, sessionID string) error {
	delete(s.carts, sessionID)
	return nil
}

func setupAuthControllerTest(t *testing.T) (*gin.Engine, service.AuthService) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(
		userRepo,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
	cartService := service.NewCartService(
		repository.NewCartRepository(testDB),
		repository.NewProductRepository(testDB),
		repository.NewProductVariantRepository(testDB),
		newStubGuestCartStore(),
	)

	ctrl := NewAuthController(authService, cartService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.GET("/me", authMiddleware.Authenticate(), ctrl.GetProfile)

	return router, authService
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Register_Success(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(t, router, "/register", RegisterRequest{
		Email:    "shopper@shopverse.io",
		Password: "password123",
		Name:     "Jane Shopper",
		Phone:    "555-0101",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotNil(t, response["user"])
	assert.NotNil(t, response["tokens"])
}

func TestAuthController_Register_InvalidEmail(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(t, router, "/register", RegisterRequest{
		Email:    "not-an-email",
		Password: "password123",
		Name:     "Jane Shopper",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_Register_ShortPassword(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(t, router, "/register", RegisterRequest{
		Email:    "shopper@shopverse.io",
		Password: "short",
		Name:     "Jane Shopper",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	body := RegisterRequest{
		Email:    "shopper@shopverse.io",
		Password: "password123",
		Name:     "Jane Shopper",
	}

	w := postJSON(t, router, "/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthController_Login_Success(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("shopper@shopverse.io", "password123", "Jane Shopper", "")
	require.NoError(t, err)

	w := postJSON(t, router, "/login", LoginRequest{
		Email:    "shopper@shopverse.io",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotNil(t, response["tokens"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("shopper@shopverse.io", "password123", "Jane Shopper", "")
	require.NoError(t, err)

	w := postJSON(t, router, "/login", LoginRequest{
		Email:    "shopper@shopverse.io",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_GetProfile(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	user, tokens, err := authService.Register("shopper@shopverse.io", "password123", "Jane Shopper", "")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, user.ID, response.User.ID)
	assert.Equal(t, "Jane Shopper", response.User.Name)
}

func TestAuthController_GetProfile_NoToken(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	req := httptest.NewRequest("GET", "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
