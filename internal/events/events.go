package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventBookingCreated  = "booking_created"
	EventBookingApproved = "booking_approved"
	EventBookingRejected = "booking_rejected"
	EventCommentAdded    = "comment_added"
)

// BookingEventPayload описывает минимальный снимок бронирования для подписчиков.
type BookingEventPayload struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	ItemName   string    `json:"item_name"`
	OwnerID    int64     `json:"owner_id"`
	BookerID   int64     `json:"booker_id"`
	BookerName string    `json:"booker_name"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// CommentEventPayload описывает добавленный отзыв.
type CommentEventPayload struct {
	CommentID  int64  `json:"comment_id"`
	ItemID     int64  `json:"item_id"`
	ItemName   string `json:"item_name"`
	OwnerID    int64  `json:"owner_id"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
