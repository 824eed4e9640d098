package services

import (
	"context"
	"errors"
	"strings"

	"github.com/baharkarakas/blog-api/internal/api/validate"
	"github.com/baharkarakas/blog-api/internal/auth"
	"github.com/baharkarakas/blog-api/internal/models"
	repo "github.com/baharkarakas/blog-api/internal/repository"
)

type UserService struct {
	r  repo.Users
	tm *auth.TokenManager
}

func NewUserService(r repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{r: r, tm: tm}
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return models.User{}, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.r.Create(ctx, models.User{Username: in.Username, Email: in.Email, PasswordHash: hash})
	if err != nil {
		return models.User{}, storeErr("create user", err)
	}
	return u, nil
}

// Login checks credentials and issues a token pair.
func (s *UserService) Login(ctx context.Context, in LoginInput) (models.User, auth.TokenPair, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return models.User{}, auth.TokenPair{}, err
	}
	u, err := s.r.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.User{}, auth.TokenPair{}, ErrInvalidCredentials
		}
		return models.User{}, auth.TokenPair{}, storeErr("find user", err)
	}
	if err := auth.VerifyPassword(in.Password, u.PasswordHash); err != nil {
		return models.User{}, auth.TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.tm.GeneratePair(u.ID)
	if err != nil {
		return models.User{}, auth.TokenPair{}, err
	}
	return u, pair, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		return models.User{}, storeErr("get user", err)
	}
	return u, nil
}
