package models

import "time"

// Booking — бронирование вещи на интервал [Start, End).
// ItemName, ItemOwnerID и BookerName заполняются при чтении через JOIN,
// в таблице bookings они не хранятся.
type Booking struct {
	ID          int64     `json:"id"`
	ItemID      int64     `json:"item_id"`
	ItemName    string    `json:"item_name,omitempty"`
	ItemOwnerID int64     `json:"item_owner_id,omitempty"`
	BookerID    int64     `json:"booker_id"`
	BookerName  string    `json:"booker_name,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"` // WAITING, APPROVED, REJECTED
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int64     `json:"version"`
}
