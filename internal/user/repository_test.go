package user

import (
	"context"
	"testing"
	"time"

	"cakestore-be/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "is_admin", "created_at", "updated_at"}).
			AddRow(1, "Amy", "amy@example.com", false, time.Now(), time.Now())

		mock.ExpectQuery(`INSERT INTO users \(name, email, password, is_admin\)`).
			WithArgs("Amy", "amy@example.com", "hashed").
			WillReturnRows(rows)

		u, err := repo.Create(ctx, "Amy", "amy@example.com", "hashed")
		assert.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
		assert.False(t, u.IsAdmin)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("Amy", "amy@example.com", "hashed").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err := repo.Create(ctx, "Amy", "amy@example.com", "hashed")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "password", "is_admin", "created_at", "updated_at"}).
			AddRow(1, "Amy", "amy@example.com", "hashed", true, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT id, name, email, password, is_admin, created_at, updated_at FROM users WHERE email = \$1`).
			WithArgs("amy@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "amy@example.com")
		assert.NoError(t, err)
		assert.True(t, u.IsAdmin)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByEmail(ctx, "ghost@example.com")
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs(uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs(uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 99)
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}
