package request

import (
	"strings"

	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	MenuItemID   uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity     int64     `json:"quantity" binding:"required,min=1"`
	Instructions *string   `json:"instructions,omitempty"`
}

func (r AddCartItemRequest) GetInstructions() *string {
	if r.Instructions == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Instructions)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
