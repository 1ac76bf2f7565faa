package service

import (
	"context"
	"errors"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo         domain.Repository
	eventBus     domain.EventPublisher
	sheetsWorker domain.SyncWorker
	clock        domain.Clock
	logger       *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, sheetsWorker domain.SyncWorker, clock domain.Clock, logger *zerolog.Logger) *BookingService {
	if clock == nil {
		clock = SystemClock()
	}
	return &BookingService{
		repo:         repo,
		eventBus:     eventBus,
		sheetsWorker: sheetsWorker,
		clock:        clock,
		logger:       logger,
	}
}

// CreateBooking создает заявку на бронирование в статусе WAITING.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*BookingView, error) {
	now := s.clock.Now()

	if !end.After(start) {
		return nil, apperr.InvalidInterval("end must be after start")
	}
	if start.Before(now) {
		return nil, apperr.InvalidInterval("start must not be in the past")
	}

	if _, err := getUser(ctx, s.repo, s.logger, bookerID); err != nil {
		return nil, err
	}

	item, err := getItem(ctx, s.repo, s.logger, itemID)
	if err != nil {
		return nil, err
	}

	// Владельцу своя вещь для бронирования не видна
	if item.OwnerID == bookerID {
		return nil, apperr.NotFound("item %d not found", itemID)
	}
	if !item.Available {
		return nil, apperr.InvalidState("item %d is not available", itemID)
	}

	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Start:    start,
		End:      end,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, internalErr(s.logger, err, "failed to create booking")
	}

	// Перечитываем с данными вещи и автора
	created, err := getBooking(ctx, s.repo, s.logger, booking.ID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, created)
	s.enqueueSync(ctx, created, "upsert")

	return NewBookingView(created), nil
}

// ApproveBooking подтверждает или отклоняет заявку. Доступно только владельцу
// вещи и только пока заявка не подтверждена.
func (s *BookingService) ApproveBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (*BookingView, error) {
	booking, err := getBooking(ctx, s.repo, s.logger, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.ItemOwnerID != ownerID {
		return nil, apperr.Forbidden("user %d cannot manage booking %d", ownerID, bookingID)
	}
	if booking.Status == models.StatusApproved {
		return nil, apperr.InvalidState("booking %d is already approved", bookingID)
	}

	newStatus := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		newStatus = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	err = s.repo.UpdateBookingStatusWithVersion(ctx, bookingID, booking.Version, newStatus)
	if errors.Is(err, database.ErrConcurrentModification) {
		return nil, apperr.Conflict("booking %d was modified concurrently", bookingID)
	}
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to update booking status")
	}

	updated, err := getBooking(ctx, s.repo, s.logger, bookingID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(eventType, updated)
	s.enqueueSync(ctx, updated, "update_status")

	return NewBookingView(updated), nil
}

// GetBooking возвращает бронирование автору заявки или владельцу вещи;
// остальным отвечает как о несуществующем.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID int64) (*BookingView, error) {
	booking, err := getBooking(ctx, s.repo, s.logger, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.BookerID != userID && booking.ItemOwnerID != userID {
		return nil, apperr.NotFound("booking %d not found", bookingID)
	}
	return NewBookingView(booking), nil
}

// ListBookingsForBooker возвращает заявки пользователя, свежие первыми.
func (s *BookingService) ListBookingsForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]BookingView, error) {
	parsed, err := ParseSearchState(state)
	if err != nil {
		return nil, err
	}
	from, size, err = pageArgs(from, size)
	if err != nil {
		return nil, err
	}
	if _, err := getUser(ctx, s.repo, s.logger, bookerID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListBookingsForBooker(ctx, bookerID, parsed, s.clock.Now(), from, size)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to list booker bookings")
	}
	return NewBookingViews(bookings), nil
}

// ListBookingsForOwner возвращает заявки на все вещи владельца.
func (s *BookingService) ListBookingsForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]BookingView, error) {
	parsed, err := ParseSearchState(state)
	if err != nil {
		return nil, err
	}
	from, size, err = pageArgs(from, size)
	if err != nil {
		return nil, err
	}
	if _, err := getUser(ctx, s.repo, s.logger, ownerID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListBookingsForOwner(ctx, ownerID, parsed, s.clock.Now(), from, size)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to list owner bookings")
	}
	return NewBookingViews(bookings), nil
}

// GetBookingsByDateRange отдаёт бронирования, начинающиеся в интервале.
// Используется административной выгрузкой.
func (s *BookingService) GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	bookings, err := s.repo.GetBookingsByDateRange(ctx, start, end)
	if err != nil {
		return nil, internalErr(s.logger, err, "failed to get bookings by date range")
	}
	return bookings, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:  booking.ID,
		ItemID:     booking.ItemID,
		ItemName:   booking.ItemName,
		OwnerID:    booking.ItemOwnerID,
		BookerID:   booking.BookerID,
		BookerName: booking.BookerName,
		Status:     booking.Status,
		Start:      booking.Start,
		End:        booking.End,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueSync(ctx context.Context, booking *models.Booking, taskType string) {
	if s.sheetsWorker == nil {
		return
	}

	var status string
	if taskType == "update_status" {
		status = booking.Status
	}

	if err := s.sheetsWorker.EnqueueTask(ctx, taskType, booking, status); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Str("task", taskType).Msg("sheets enqueue error")
	}
}
