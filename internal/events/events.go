package events

import "github.com/google/uuid"

const (
	SubjectItemAdded   = "cart.item_added"
	SubjectItemUpdated = "cart.item_updated"
	SubjectItemRemoved = "cart.item_removed"
)

// ItemEvent is the JSON payload published on every cart mutation.
// Quantity is the resulting quantity, zero for removals.
type ItemEvent struct {
	CartID    uuid.UUID `json:"cart_id"`
	ProductID uuid.UUID `json:"product_id"`
	ItemID    uuid.UUID `json:"item_id"`
	Quantity  int32     `json:"quantity,omitempty"`
}
