package model

import "github.com/google/uuid"

// ListItem is a line on the active shopping list. Amount is free text
// ("2", "a pinch") and may be absent. FromPantry links refill-generated
// items back to the pantry row they replenish.
type ListItem struct {
	ID         int64     `json:"id"`
	List       uuid.UUID `json:"list"`
	Name       string    `json:"name"`
	Amount     *string   `json:"amount,omitempty"`
	FromPantry *int64    `json:"from_pantry,omitempty"`
}
