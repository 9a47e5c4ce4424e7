package service

import (
	"testing"
	"time"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register_Success(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("new@example.com", "password123", "New User", "555-0101")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("dup@example.com", "password123", "First", "")
	require.NoError(t, err)

	_, _, err = authService.Register("dup@example.com", "password456", "Second", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("login@example.com", "password123", "Login User", "")
	require.NoError(t, err)

	user, tokens, err := authService.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("victim@example.com", "password123", "Victim", "")
	require.NoError(t, err)

	_, _, err = authService.Login("victim@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Login("ghost@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshTokens(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, tokens, err := authService.Register("refresh@example.com", "password123", "Refresher", "")
	require.NoError(t, err)

	newTokens, err := authService.RefreshTokens(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newTokens.AccessToken)
	assert.NotEmpty(t, newTokens.RefreshToken)
}

func TestAuthService_RefreshTokens_Garbage(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.RefreshTokens("not-a-token")
	assert.Error(t, err)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("profile@example.com", "password123", "Before", "555-0100")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "After", "555-0200")
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "555-0200", updated.Phone)

	// Empty fields leave the current values untouched
	updated, err = authService.UpdateProfile(user.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "555-0200", updated.Phone)
}
