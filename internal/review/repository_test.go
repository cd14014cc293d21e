package review

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs(uint(7), uint(1), "Amy", 5.0, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(3, time.Now(), time.Now()))

		rv, err := repo.Insert(context.Background(), &Review{ProductID: 7, UserID: 1, Name: "Amy", Rating: 5})
		require.NoError(t, err)
		assert.Equal(t, uint(3), rv.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateMapsToConflict", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs(uint(7), uint(1), "Amy", 5.0, nil).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Insert(context.Background(), &Review{ProductID: 7, UserID: 1, Name: "Amy", Rating: 5})
		assert.ErrorIs(t, err, ErrDuplicateReview)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_HasPaidPurchase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(uint(1), uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	purchased, err := repo.HasPaidPurchase(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.True(t, purchased)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RatingsForProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT rating FROM reviews`).
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(5.0).AddRow(4.0))

	ratings, err := repo.RatingsForProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 4}, ratings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
			WithArgs(uint(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
			WithArgs(uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
