package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Repository — каноничное хранилище всех сущностей. Единственный владелец
// состояния; сервисы сами состояния не держат.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error

	// Items
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Item, error)
	SearchAvailableItems(ctx context.Context, text string, from, size int) ([]*models.Item, error)

	// Bookings
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusWithVersion(ctx context.Context, id, version int64, status string) error
	ListBookingsForBooker(ctx context.Context, bookerID int64, state string, now time.Time, from, size int) ([]*models.Booking, error)
	ListBookingsForOwner(ctx context.Context, ownerID int64, state string, now time.Time, from, size int) ([]*models.Booking, error)
	GetBookingsForItem(ctx context.Context, itemID int64) ([]*models.Booking, error)
	GetBookingsForItems(ctx context.Context, itemIDs []int64) (map[int64][]*models.Booking, error)
	HasQualifyingBooking(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error)
	GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error)

	// Comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsForItem(ctx context.Context, itemID int64) ([]*models.Comment, error)
	GetCommentsForItems(ctx context.Context, itemIDs []int64) (map[int64][]*models.Comment, error)

	// Item requests
	CreateItemRequest(ctx context.Context, request *models.ItemRequest) error
	GetItemRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetItemRequestsByUser(ctx context.Context, userID int64) ([]*models.ItemRequest, error)
	GetOtherUsersItemRequests(ctx context.Context, userID int64, from, size int) ([]*models.ItemRequest, error)
	GetItemsForRequests(ctx context.Context, requestIDs []int64) (map[int64][]*models.Item, error)
}

// Clock отдаёт "сейчас"; сервис читает его один раз на операцию,
// чтобы все сравнения внутри операции были согласованы.
type Clock interface {
	Now() time.Time
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// SearchCache кэширует результаты поиска вещей. Get возвращает nil при промахе.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]*models.Item, error)
	Set(ctx context.Context, key string, items []*models.Item) error
	Invalidate(ctx context.Context) error
}

// SyncWorker ставит задачу зеркалирования бронирования во внешнюю таблицу.
type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, booking *models.Booking, status string) error
}
