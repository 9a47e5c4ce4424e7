package service

import (
	"testing"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWishlistServiceTest(t *testing.T) (WishlistService, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	wishlistRepo := repository.NewWishlistRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	wishlistService := NewWishlistService(wishlistRepo, productRepo)

	user := &model.User{
		Email:        "wisher@example.com",
		PasswordHash: "hash",
		Name:         "Wisher",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:          "Yoga Mat",
		Price:         30,
		Category:      model.CategorySports,
		StockQuantity: 20,
	}
	testDB.Create(product)

	return wishlistService, user, product
}

func TestWishlistService_Toggle(t *testing.T) {
	wishlistService, user, product := setupWishlistServiceTest(t)

	wishlisted, err := wishlistService.Toggle(user.ID, product.ID)
	assert.NoError(t, err)
	assert.True(t, wishlisted)

	items, err := wishlistService.GetUserWishlist(user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistService_DoubleToggleRestoresState(t *testing.T) {
	wishlistService, user, product := setupWishlistServiceTest(t)

	wishlisted, err := wishlistService.Toggle(user.ID, product.ID)
	require.NoError(t, err)
	require.True(t, wishlisted)

	wishlisted, err = wishlistService.Toggle(user.ID, product.ID)
	assert.NoError(t, err)
	assert.False(t, wishlisted)

	items, err := wishlistService.GetUserWishlist(user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestWishlistService_Toggle_ProductNotFound(t *testing.T) {
	wishlistService, user, _ := setupWishlistServiceTest(t)

	_, err := wishlistService.Toggle(user.ID, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistService_Add_Idempotent(t *testing.T) {
	wishlistService, user, product := setupWishlistServiceTest(t)

	require.NoError(t, wishlistService.Add(user.ID, product.ID))
	require.NoError(t, wishlistService.Add(user.ID, product.ID))

	items, err := wishlistService.GetUserWishlist(user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistService_Remove(t *testing.T) {
	wishlistService, user, product := setupWishlistServiceTest(t)

	require.NoError(t, wishlistService.Add(user.ID, product.ID))
	require.NoError(t, wishlistService.Remove(user.ID, product.ID))

	contains, err := wishlistService.Contains(user.ID, product.ID)
	assert.NoError(t, err)
	assert.False(t, contains)
}

func TestWishlistService_Remove_NotInWishlist(t *testing.T) {
	wishlistService, user, product := setupWishlistServiceTest(t)

	err := wishlistService.Remove(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}
