package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records when a (list, creator) pair last used an item name.
// Names are stored case-folded; entries only feed suggestion queries.
type HistoryEntry struct {
	List     uuid.UUID `json:"list"`
	Creator  uuid.UUID `json:"creator"`
	Name     string    `json:"name"`
	LastUsed time.Time `json:"last_used"`
}
