package model

import (
	"time"

	"github.com/google/uuid"
)

// ListStatus describes the caller's relationship to a list.
type ListStatus string

const (
	StatusOwned       ListStatus = "owned"
	StatusSharedWrite ListStatus = "shared_write"
	StatusSharedRead  ListStatus = "shared_read"
)

type List struct {
	ID        uuid.UUID `json:"id"`
	Owner     uuid.UUID `json:"owner"`
	Name      string    `json:"name"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

// ListInfo is the per-list entry returned when enumerating a user's lists.
type ListInfo struct {
	Name   string     `json:"name"`
	Status ListStatus `json:"status"`
	Public bool       `json:"public"`
	Owner  uuid.UUID  `json:"owner"`
}

type Share struct {
	List     uuid.UUID `json:"list"`
	Shared   uuid.UUID `json:"shared"`
	Readonly bool      `json:"readonly"`
}
