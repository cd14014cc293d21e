package user

import (
	"context"
	"strings"

	"cakestore-be/internal/apperr"
	"cakestore-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetByID(ctx context.Context, id uint) (User, error)
	List(ctx context.Context, limit, offset int32) ([]User, error)
	UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (User, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return "", User{}, apperr.New(apperr.Validation, "name, email and password are required")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed)
	if err != nil {
		if err == ErrEmailExists {
			return "", User{}, apperr.New(apperr.Conflict, "email already registered")
		}
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register completed", zap.Uint("user_id", u.ID), zap.String("email", email))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		log.Debug("login: email not found", zap.String("email", email))
		return "", User{}, apperr.New(apperr.Auth, "invalid email or password")
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Debug("login: password mismatch", zap.Uint("user_id", u.ID))
		return "", User{}, apperr.New(apperr.Auth, "invalid email or password")
	}

	token, err := GenerateJWT(u.ID, u.Email, u.IsAdmin)
	return token, u, err
}

func (s *service) GetByID(ctx context.Context, id uint) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int32) ([]User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *service) UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (User, error) {
	if params.Password != nil {
		hashed, err := HashPassword(*params.Password)
		if err != nil {
			return User{}, err
		}
		params.Password = &hashed
	}

	u, err := s.repo.UpdateProfile(ctx, id, params)
	if err != nil {
		if err == ErrEmailExists {
			return User{}, apperr.New(apperr.Conflict, "email already registered")
		}
		return User{}, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
