package service

import (
	"context"
	"errors"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// UserPatch — частичное обновление; nil-поля не трогаются.
type UserPatch struct {
	Name  *string
	Email *string
}

func (s *UserService) CreateUser(ctx context.Context, name, email string) (*UserView, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.InvalidArgument("user name must not be blank")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email}
	err := s.repo.CreateUser(ctx, user)
	if errors.Is(err, database.ErrDuplicateEmail) {
		return nil, apperr.Conflict("email %s is already in use", email)
	}
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to create user")
	}
	return NewUserView(user), nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*UserView, error) {
	user, err := getUser(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}
	return NewUserView(user), nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to list users")
	}
	return NewUserViews(users), nil
}

// GetUsersForExport возвращает модели пользователей для административной выгрузки.
func (s *UserService) GetUsersForExport(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to list users")
	}
	return users, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, patch UserPatch) (*UserView, error) {
	user, err := getUser(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.InvalidArgument("user name must not be blank")
		}
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}

	err = s.repo.UpdateUser(ctx, user)
	if errors.Is(err, database.ErrDuplicateEmail) {
		return nil, apperr.Conflict("email %s is already in use", user.Email)
	}
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to update user")
	}
	return NewUserView(user), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := getUser(ctx, s.repo, s.logger, id); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return internalErr(s.logger, err, "failed to delete user")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.InvalidArgument("email must not be blank")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return apperr.InvalidArgument("invalid email: %s", email)
	}
	return nil
}
