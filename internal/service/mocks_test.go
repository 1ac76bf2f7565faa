package service

import (
	"context"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *mockRepo) UpdateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockRepo) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CreateItem(ctx context.Context, i *models.Item) error {
	return m.Called(ctx, i).Error(0)
}
func (m *mockRepo) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}
func (m *mockRepo) UpdateItem(ctx context.Context, i *models.Item) error {
	return m.Called(ctx, i).Error(0)
}
func (m *mockRepo) GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Item, error) {
	args := m.Called(ctx, ownerID, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}
func (m *mockRepo) SearchAvailableItems(ctx context.Context, text string, from, size int) ([]*models.Item, error) {
	args := m.Called(ctx, text, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *mockRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockRepo) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) UpdateBookingStatusWithVersion(ctx context.Context, id, v int64, s string) error {
	return m.Called(ctx, id, v, s).Error(0)
}
func (m *mockRepo) ListBookingsForBooker(ctx context.Context, bookerID int64, state string, now time.Time, from, size int) ([]*models.Booking, error) {
	args := m.Called(ctx, bookerID, state, now, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) ListBookingsForOwner(ctx context.Context, ownerID int64, state string, now time.Time, from, size int) ([]*models.Booking, error) {
	args := m.Called(ctx, ownerID, state, now, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) GetBookingsForItem(ctx context.Context, itemID int64) ([]*models.Booking, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) GetBookingsForItems(ctx context.Context, itemIDs []int64) (map[int64][]*models.Booking, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]*models.Booking), args.Error(1)
}
func (m *mockRepo) HasQualifyingBooking(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, authorID, itemID, now)
	return args.Bool(0), args.Error(1)
}
func (m *mockRepo) GetBookingsByDateRange(ctx context.Context, s, e time.Time) ([]*models.Booking, error) {
	args := m.Called(ctx, s, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *mockRepo) CreateComment(ctx context.Context, c *models.Comment) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockRepo) GetCommentsForItem(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}
func (m *mockRepo) GetCommentsForItems(ctx context.Context, itemIDs []int64) (map[int64][]*models.Comment, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]*models.Comment), args.Error(1)
}

func (m *mockRepo) CreateItemRequest(ctx context.Context, r *models.ItemRequest) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockRepo) GetItemRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemRequest), args.Error(1)
}
func (m *mockRepo) GetItemRequestsByUser(ctx context.Context, userID int64) ([]*models.ItemRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ItemRequest), args.Error(1)
}
func (m *mockRepo) GetOtherUsersItemRequests(ctx context.Context, userID int64, from, size int) ([]*models.ItemRequest, error) {
	args := m.Called(ctx, userID, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ItemRequest), args.Error(1)
}
func (m *mockRepo) GetItemsForRequests(ctx context.Context, requestIDs []int64) (map[int64][]*models.Item, error) {
	args := m.Called(ctx, requestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]*models.Item), args.Error(1)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) PublishJSON(et string, p interface{}) error { return m.Called(et, p).Error(0) }

type mockWorker struct {
	mock.Mock
}

func (m *mockWorker) EnqueueTask(ctx context.Context, tt string, b *models.Booking, s string) error {
	return m.Called(ctx, tt, b, s).Error(0)
}

type mockSearchCache struct {
	mock.Mock
}

func (m *mockSearchCache) Get(ctx context.Context, key string) ([]*models.Item, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}
func (m *mockSearchCache) Set(ctx context.Context, key string, items []*models.Item) error {
	return m.Called(ctx, key, items).Error(0)
}
func (m *mockSearchCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// fixedClock всегда возвращает одно и то же время.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
