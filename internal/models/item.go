package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	RequestID   *int64    `json:"request_id,omitempty"` // заявка, под которую создана вещь
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
