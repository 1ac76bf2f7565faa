package service

import (
	"context"
	"fmt"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo        domain.Repository
	searchCache domain.SearchCache
	eventBus    domain.EventPublisher
	clock       domain.Clock
	logger      *zerolog.Logger
}

func NewItemService(repo domain.Repository, searchCache domain.SearchCache, eventBus domain.EventPublisher, clock domain.Clock, logger *zerolog.Logger) *ItemService {
	if clock == nil {
		clock = SystemClock()
	}
	return &ItemService{
		repo:        repo,
		searchCache: searchCache,
		eventBus:    eventBus,
		clock:       clock,
		logger:      logger,
	}
}

// ItemInput — данные создания вещи.
type ItemInput struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

// ItemPatch — частичное обновление; nil-поля не трогаются.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, input ItemInput) (*ItemView, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.InvalidArgument("item name must not be blank")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperr.InvalidArgument("item description must not be blank")
	}
	if input.Available == nil {
		return nil, apperr.InvalidArgument("item availability must be set")
	}

	if _, err := getUser(ctx, s.repo, s.logger, ownerID); err != nil {
		return nil, err
	}
	if input.RequestID != nil {
		if _, err := getItemRequest(ctx, s.repo, s.logger, *input.RequestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Available:   *input.Available,
		RequestID:   input.RequestID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, internalErr(s.logger, err, "failed to create item")
	}

	s.invalidateSearchCache(ctx)

	return NewItemView(item, nil), nil
}

// UpdateItem частично обновляет вещь; разрешено только её владельцу.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, patch ItemPatch) (*ItemView, error) {
	item, err := getItem(ctx, s.repo, s.logger, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, apperr.Forbidden("user %d does not own item %d", ownerID, itemID)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.InvalidArgument("item name must not be blank")
		}
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, apperr.InvalidArgument("item description must not be blank")
		}
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, internalErr(s.logger, err, "failed to update item")
	}

	s.invalidateSearchCache(ctx)

	return NewItemView(item, nil), nil
}

// GetItem возвращает карточку вещи. Сведения о последнем и ближайшем
// бронировании видит только владелец.
func (s *ItemService) GetItem(ctx context.Context, userID, itemID int64) (*ItemView, error) {
	item, err := getItem(ctx, s.repo, s.logger, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.GetCommentsForItem(ctx, itemID)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to load item comments")
	}

	if userID != item.OwnerID {
		return NewItemView(item, comments), nil
	}

	bookings, err := s.repo.GetBookingsForItem(ctx, itemID)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to load item bookings")
	}
	return NewOwnerItemView(item, bookings, comments, s.clock.Now()), nil
}

// ListItemsForOwner возвращает вещи владельца с бронированиями и отзывами.
func (s *ItemService) ListItemsForOwner(ctx context.Context, ownerID int64, from, size int) ([]ItemView, error) {
	from, size, err := pageArgs(from, size)
	if err != nil {
		return nil, err
	}
	if _, err := getUser(ctx, s.repo, s.logger, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to list owner items")
	}

	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	bookingsByItem, err := s.repo.GetBookingsForItems(ctx, itemIDs)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to load bookings for items")
	}
	commentsByItem, err := s.repo.GetCommentsForItems(ctx, itemIDs)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to load comments for items")
	}

	now := s.clock.Now()
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, *NewOwnerItemView(item, bookingsByItem[item.ID], commentsByItem[item.ID], now))
	}
	return views, nil
}

// SearchItems ищет доступные вещи по подстроке. Пустой запрос возвращает
// пустой список без похода в хранилище.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) ([]ItemView, error) {
	from, size, err := pageArgs(from, size)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []ItemView{}, nil
	}

	key := searchCacheKey(text, from, size)
	if s.searchCache != nil {
		cached, err := s.searchCache.Get(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("search cache get error")
		} else if cached != nil {
			metrics.IncSearchCache("hit")
			return itemViews(cached), nil
		}
		metrics.IncSearchCache("miss")
	}

	items, err := s.repo.SearchAvailableItems(ctx, text, from, size)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to search items")
	}

	if s.searchCache != nil {
		if err := s.searchCache.Set(ctx, key, items); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("search cache set error")
		}
	}
	return itemViews(items), nil
}

// AddComment добавляет отзыв. Право на отзыв даёт завершённое подтверждённое
// бронирование этой вещи автором.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*CommentView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.InvalidArgument("comment text must not be blank")
	}

	author, err := getUser(ctx, s.repo, s.logger, authorID)
	if err != nil {
		return nil, err
	}
	item, err := getItem(ctx, s.repo, s.logger, itemID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	qualified, err := s.repo.HasQualifyingBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to check qualifying booking")
	}
	if !qualified {
		return nil, apperr.InvalidState("user %d has no completed booking of item %d", authorID, itemID)
	}

	comment := &models.Comment{
		ItemID:   itemID,
		AuthorID: authorID,
		Text:     text,
		Created:  now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, internalErr(s.logger, err, "failed to create comment")
	}
	comment.AuthorName = author.Name

	s.publishCommentEvent(comment, item)

	return NewCommentView(comment), nil
}

func (s *ItemService) publishCommentEvent(comment *models.Comment, item *models.Item) {
	if s.eventBus == nil {
		return
	}

	payload := events.CommentEventPayload{
		CommentID:  comment.ID,
		ItemID:     item.ID,
		ItemName:   item.Name,
		OwnerID:    item.OwnerID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		Text:       comment.Text,
	}
	if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
		s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
	}
}

func (s *ItemService) invalidateSearchCache(ctx context.Context) {
	if s.searchCache == nil {
		return
	}
	if err := s.searchCache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("search cache invalidate error")
	}
}

func searchCacheKey(text string, from, size int) string {
	return fmt.Sprintf("search:%s:%d:%d", strings.ToLower(strings.TrimSpace(text)), from, size)
}

func itemViews(items []*models.Item) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, *NewItemView(item, nil))
	}
	return views
}
