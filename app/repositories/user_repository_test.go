package repositories

import (
	"context"
	"testing"

	"agricare/app/models"

	"github.com/stretchr/testify/assert"
)

func testUser(email string) *models.User {
	return &models.User{
		Name:         "Ravi Kumar",
		Phone:        "9876543210",
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Location:     "Nashik",
		Role:         models.RoleFarmer,
	}
}

func TestUserRepository(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		user := testUser("ravi@example.com")
		err := store.Users().Create(ctx, user)
		assert.NoError(t, err)
		assert.Greater(t, user.ID, 0)

		byID, err := store.Users().GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user.Email, byID.Email)

		byEmail, err := store.Users().GetByEmail(ctx, "ravi@example.com")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("email lookup is case insensitive", func(t *testing.T) {
		user, err := store.Users().GetByEmail(ctx, "RAVI@Example.COM")
		assert.NoError(t, err)
		assert.Equal(t, "ravi@example.com", user.Email)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := testUser("ravi@example.com")
		err := store.Users().Create(ctx, dup)
		assert.Error(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := store.Users().GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
