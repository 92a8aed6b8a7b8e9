package service

import (
	"context"
	"testing"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_DefaultsToCustomerAndHashesPassword(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, zap.NewNop())

	user, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.COM",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.UserID)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestRegister_ExplicitRoles(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, zap.NewNop())

	seller, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "seller",
		Email:    "seller@example.com",
		Password: "secret123",
		Role:     "Seller",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSeller, seller.Role)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Username: "weird",
		Email:    "weird@example.com",
		Password: "secret123",
		Role:     "Superuser",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegister_DuplicateEmailOrUsernameConflicts(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, zap.NewNop())

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice2",
		Email:    "ALICE@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserExists)

	// Neither conflicting attempt created a user.
	assert.Len(t, store.users, 1)
}

func TestAuthenticate(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, zap.NewNop())

	registered, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "Alice@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, user.UserID)

	_, err = svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser_NotFound(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, zap.NewNop())

	_, err := svc.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
