package models

import "time"

// ItemRequest — заявка пользователя на вещь, которой ещё нет в каталоге.
type ItemRequest struct {
	ID          int64     `json:"id"`
	RequesterID int64     `json:"requester_id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}
