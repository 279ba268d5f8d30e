package model

import "github.com/google/uuid"

// PantryItem is a stocked item with its current and desired amounts.
type PantryItem struct {
	ID     int64     `json:"id"`
	List   uuid.UUID `json:"list"`
	Name   string    `json:"name"`
	Amount int64     `json:"amount"`
	Target int64     `json:"target"`
}
