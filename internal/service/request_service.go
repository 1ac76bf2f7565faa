package service

import (
	"context"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	clock  domain.Clock
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, clock domain.Clock, logger *zerolog.Logger) *RequestService {
	if clock == nil {
		clock = SystemClock()
	}
	return &RequestService{repo: repo, clock: clock, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, requesterID int64, description string) (*RequestView, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperr.InvalidArgument("request description must not be blank")
	}
	if _, err := getUser(ctx, s.repo, s.logger, requesterID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		RequesterID: requesterID,
		Description: description,
		Created:     s.clock.Now(),
	}
	if err := s.repo.CreateItemRequest(ctx, request); err != nil {
		return nil, internalErr(s.logger, err, "failed to create item request")
	}
	return NewRequestView(request, nil), nil
}

// GetOwnRequests возвращает заявки пользователя со связанными вещами,
// свежие первыми.
func (s *RequestService) GetOwnRequests(ctx context.Context, userID int64) ([]RequestView, error) {
	if _, err := getUser(ctx, s.repo, s.logger, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetItemRequestsByUser(ctx, userID)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to list user requests")
	}
	return s.buildRequestViews(ctx, requests)
}

// GetOtherRequests возвращает чужие заявки постранично.
func (s *RequestService) GetOtherRequests(ctx context.Context, userID int64, from, size int) ([]RequestView, error) {
	from, size, err := pageArgs(from, size)
	if err != nil {
		return nil, err
	}
	if _, err := getUser(ctx, s.repo, s.logger, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetOtherUsersItemRequests(ctx, userID, from, size)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to list other users requests")
	}
	return s.buildRequestViews(ctx, requests)
}

func (s *RequestService) GetRequest(ctx context.Context, userID, requestID int64) (*RequestView, error) {
	if _, err := getUser(ctx, s.repo, s.logger, userID); err != nil {
		return nil, err
	}
	request, err := getItemRequest(ctx, s.repo, s.logger, requestID)
	if err != nil {
		return nil, err
	}

	itemsByRequest, err := s.repo.GetItemsForRequests(ctx, []int64{requestID})
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to load items for request")
	}
	return NewRequestView(request, itemsByRequest[requestID]), nil
}

func (s *RequestService) buildRequestViews(ctx context.Context, requests []*models.ItemRequest) ([]RequestView, error) {
	requestIDs := make([]int64, 0, len(requests))
	for _, r := range requests {
		requestIDs = append(requestIDs, r.ID)
	}

	itemsByRequest, err := s.repo.GetItemsForRequests(ctx, requestIDs)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to load items for requests")
	}

	views := make([]RequestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, *NewRequestView(r, itemsByRequest[r.ID]))
	}
	return views, nil
}
