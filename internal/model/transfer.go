package model

import (
	"time"

	"github.com/google/uuid"
)

// Transfer - player to player move of balance
type Transfer struct {
	ID        uuid.UUID
	From      int
	To        int
	Amount    int64
	CreatedAt time.Time
	Balance   int64 // sender balance right after, only set on the call that made it
}
