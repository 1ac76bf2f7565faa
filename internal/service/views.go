package service

import (
	"time"

	"shareit/internal/models"
)

// Представления — то, что уходит наружу через API. Собираются чистыми
// функциями из моделей хранилища, без обращений к базе.

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingView struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker UserRef   `json:"booker"`
	Item   ItemRef   `json:"item"`
}

// ShortBookingView — ссылка на ближайшее/последнее бронирование в карточке вещи.
type ShortBookingView struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemView struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *ShortBookingView `json:"lastBooking"`
	NextBooking *ShortBookingView `json:"nextBooking"`
	Comments    []CommentView     `json:"comments"`
}

type RequestView struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Created     time.Time  `json:"created"`
	Items       []ItemView `json:"items"`
}

func NewUserView(user *models.User) *UserView {
	return &UserView{ID: user.ID, Name: user.Name, Email: user.Email}
}

func NewUserViews(users []*models.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, *NewUserView(u))
	}
	return views
}

func NewBookingView(booking *models.Booking) *BookingView {
	return &BookingView{
		ID:     booking.ID,
		Start:  booking.Start,
		End:    booking.End,
		Status: booking.Status,
		Booker: UserRef{ID: booking.BookerID, Name: booking.BookerName},
		Item:   ItemRef{ID: booking.ItemID, Name: booking.ItemName},
	}
}

func NewBookingViews(bookings []*models.Booking) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, *NewBookingView(b))
	}
	return views
}

func NewCommentView(comment *models.Comment) *CommentView {
	return &CommentView{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: comment.AuthorName,
		Created:    comment.Created,
	}
}

func NewCommentViews(comments []*models.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, *NewCommentView(c))
	}
	return views
}

// NewItemView собирает карточку вещи без сведений о бронированиях.
func NewItemView(item *models.Item, comments []*models.Comment) *ItemView {
	return &ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
		Comments:    NewCommentViews(comments),
	}
}

// NewOwnerItemView собирает карточку для владельца: с последним и ближайшим
// бронированием, вычисленными на момент now.
func NewOwnerItemView(item *models.Item, bookings []*models.Booking, comments []*models.Comment, now time.Time) *ItemView {
	view := NewItemView(item, comments)
	last, next := selectLastNext(bookings, now)
	if last != nil {
		view.LastBooking = &ShortBookingView{ID: last.ID, BookerID: last.BookerID}
	}
	if next != nil {
		view.NextBooking = &ShortBookingView{ID: next.ID, BookerID: next.BookerID}
	}
	return view
}

// selectLastNext выбирает последнее начавшееся и ближайшее будущее бронирование
// по дате начала. Отклонённые бронирования не учитываются.
func selectLastNext(bookings []*models.Booking, now time.Time) (last, next *models.Booking) {
	for _, b := range bookings {
		if b.Status == models.StatusRejected {
			continue
		}
		if b.Start.After(now) {
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		} else {
			if last == nil || b.Start.After(last.Start) {
				last = b
			}
		}
	}
	return last, next
}

func NewRequestView(request *models.ItemRequest, items []*models.Item) *RequestView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, *NewItemView(item, nil))
	}
	return &RequestView{
		ID:          request.ID,
		Description: request.Description,
		Created:     request.Created,
		Items:       views,
	}
}
