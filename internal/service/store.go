package service

import (
	"context"
	"errors"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// Хелперы доступа к хранилищу: переводят ошибки database в доменные виды,
// внутренние ошибки логируют и скрывают от вызывающего.

func getUser(ctx context.Context, repo domain.Repository, logger *zerolog.Logger, id int64) (*models.User, error) {
	user, err := repo.GetUserByID(ctx, id)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, database.ErrNotFound):
		return nil, apperr.NotFound("user %d not found", id)
	default:
		logger.Error().Err(err).Int64("user_id", id).Msg("failed to load user")
		return nil, apperr.Internal(err)
	}
}

func getItem(ctx context.Context, repo domain.Repository, logger *zerolog.Logger, id int64) (*models.Item, error) {
	item, err := repo.GetItemByID(ctx, id)
	switch {
	case err == nil:
		return item, nil
	case errors.Is(err, database.ErrNotFound):
		return nil, apperr.NotFound("item %d not found", id)
	default:
		logger.Error().Err(err).Int64("item_id", id).Msg("failed to load item")
		return nil, apperr.Internal(err)
	}
}

func getBooking(ctx context.Context, repo domain.Repository, logger *zerolog.Logger, id int64) (*models.Booking, error) {
	booking, err := repo.GetBooking(ctx, id)
	switch {
	case err == nil:
		return booking, nil
	case errors.Is(err, database.ErrNotFound):
		return nil, apperr.NotFound("booking %d not found", id)
	default:
		logger.Error().Err(err).Int64("booking_id", id).Msg("failed to load booking")
		return nil, apperr.Internal(err)
	}
}

func getItemRequest(ctx context.Context, repo domain.Repository, logger *zerolog.Logger, id int64) (*models.ItemRequest, error) {
	request, err := repo.GetItemRequestByID(ctx, id)
	switch {
	case err == nil:
		return request, nil
	case errors.Is(err, database.ErrNotFound):
		return nil, apperr.NotFound("request %d not found", id)
	default:
		logger.Error().Err(err).Int64("request_id", id).Msg("failed to load item request")
		return nil, apperr.Internal(err)
	}
}

func internalErr(logger *zerolog.Logger, err error, msg string) error {
	logger.Error().Err(err).Msg(msg)
	return apperr.Internal(err)
}

// pageArgs валидирует пагинацию; нулевой размер заменяется значением по умолчанию.
func pageArgs(from, size int) (int, int, error) {
	if size == 0 {
		size = models.DefaultPageSize
	}
	if from < 0 || size < 0 {
		return 0, 0, apperr.InvalidArgument("invalid pagination: from=%d, size=%d", from, size)
	}
	return from, size, nil
}
