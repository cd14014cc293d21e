package category

import (
	"context"
	"errors"
	"testing"

	"cakestore-be/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error) {
	args := m.Called(ctx, filter, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Category), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) Add(ctx context.Context, name string, description *string) (*Category, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, params UpdateParams) (*Category, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Tests ---

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		expected := &Category{ID: 1, Name: "Birthday Cakes"}
		mockRepo.On("Add", ctx, "Birthday Cakes", (*string)(nil)).Return(expected, nil)

		res, err := svc.Add(ctx, "Birthday Cakes", nil)
		assert.NoError(t, err)
		assert.Equal(t, expected, res)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmptyName", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Add(ctx, "   ", nil)
		assert.Error(t, err)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("Add", ctx, "Birthday Cakes", (*string)(nil)).Return(nil, errors.New("db error"))

		_, err := svc.Add(ctx, "Birthday Cakes", nil)
		assert.Error(t, err)
	})
}

func TestService_GetCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyResultIsNotNil", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetCategories", ctx, (*string)(nil), (*int32)(nil), (*int32)(nil)).
			Return([]*Category(nil), nil)

		res, err := svc.GetCategories(ctx, nil, nil, nil)
		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("BlankNameRejected", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		blank := ""

		_, err := svc.Update(ctx, 1, UpdateParams{Name: &blank})
		assert.Error(t, err)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	})
}
