package user

import (
	"context"
	"database/sql"
	"errors"

	"cakestore-be/internal/apperr"
	"cakestore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, name, email, hashedPassword string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uint) (User, error)
	List(ctx context.Context, limit, offset int32) ([]User, error)
	UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (User, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, hashedPassword string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password, is_admin)
		VALUES ($1, $2, $3, false)
		RETURNING id, name, email, is_admin, created_at, updated_at
	`, name, email, hashedPassword).
		Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return User{}, ErrEmailExists
		}
		logger.FromCtx(ctx).Error("failed to insert user", zap.Error(err))
		return User{}, err
	}
	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, is_admin, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *repository) List(ctx context.Context, limit, offset int32) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, is_admin, created_at, updated_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *repository) UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET name       = COALESCE($1, name),
		    email      = COALESCE($2, email),
		    password   = COALESCE($3, password),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id, name, email, is_admin, created_at, updated_at
	`, params.Name, params.Email, params.Password, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return u, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}
