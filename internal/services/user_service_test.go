package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/blog-api/internal/api/validate"
	"github.com/baharkarakas/blog-api/internal/auth"
	"github.com/baharkarakas/blog-api/internal/repository/memory"
)

func newUserService() (*UserService, *auth.TokenManager) {
	tm := auth.NewTokenManager("a", "r", "test", time.Minute, time.Hour)
	return NewUserService(memory.NewUsers(), tm), tm
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tm := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Username: "testuser", Email: " Test@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", u.Email)
	assert.NotEqual(t, "password123", u.PasswordHash)

	got, pair, err := svc.Login(ctx, LoginInput{Email: "test@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	id, err := tm.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "b@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newUserService()
	_, err := svc.Register(context.Background(), RegisterInput{Username: "al", Email: "bad", Password: "x"})
	var errs validate.Errs
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 3)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginInput{Email: "a@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetMissingUser(t *testing.T) {
	svc, _ := newUserService()
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
