package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService(repo *mockRepo) *UserService {
	logger := zerolog.New(io.Discard)
	return NewUserService(repo, &logger)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newUserService(repo)

		repo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 1
		}).Return(nil).Once()

		view, err := svc.CreateUser(ctx, "Alice", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), view.ID)
		assert.Equal(t, "alice@example.com", view.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := newUserService(new(mockRepo))

		for _, email := range []string{"", "  ", "plain", "@nolocal", "notail@"} {
			_, err := svc.CreateUser(ctx, "Alice", email)
			assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), "email %q", email)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		svc := newUserService(new(mockRepo))

		_, err := svc.CreateUser(ctx, " ", "alice@example.com")
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newUserService(repo)

		repo.On("CreateUser", ctx, mock.Anything).Return(database.ErrDuplicateEmail).Once()

		_, err := svc.CreateUser(ctx, "Bob", "taken@example.com")
		assert.True(t, errors.Is(err, apperr.ErrConflict))
	})
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := newUserService(repo)

	repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1, Name: "Alice", Email: "alice@example.com"}, nil).Once()
	repo.On("GetUserByID", ctx, int64(99)).Return(nil, database.ErrNotFound).Once()

	view, err := svc.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", view.Name)

	_, err = svc.GetUser(ctx, 99)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newUserService(repo)

		repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1, Name: "Alice", Email: "alice@example.com"}, nil).Once()
		repo.On("UpdateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Name == "Alice" && u.Email == "new@example.com"
		})).Return(nil).Once()

		view, err := svc.UpdateUser(ctx, 1, UserPatch{Email: strPtr("new@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "Alice", view.Name)
		assert.Equal(t, "new@example.com", view.Email)
		repo.AssertExpectations(t)
	})

	t.Run("email conflict", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newUserService(repo)

		repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1, Name: "Alice", Email: "alice@example.com"}, nil).Once()
		repo.On("UpdateUser", ctx, mock.Anything).Return(database.ErrDuplicateEmail).Once()

		_, err := svc.UpdateUser(ctx, 1, UserPatch{Email: strPtr("taken@example.com")})
		assert.True(t, errors.Is(err, apperr.ErrConflict))
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := newUserService(repo)

	repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil).Once()
	repo.On("DeleteUser", ctx, int64(1)).Return(nil).Once()

	err := svc.DeleteUser(ctx, 1)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetAllUsers(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := newUserService(repo)

	repo.On("GetAllUsers", ctx).Return([]*models.User{{ID: 1}, {ID: 2}}, nil).Once()

	views, err := svc.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}
