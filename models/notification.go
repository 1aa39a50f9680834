package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID              string           `gorm:"primaryKey;size:36" json:"id"`
	Kind            NotificationKind `gorm:"size:16;not null" json:"kind"`
	Message         string           `gorm:"type:text;not null" json:"message"`
	InventoryItemID *string          `gorm:"size:36;index" json:"inventory_item_id"`
	Timestamp       time.Time        `gorm:"not null;index" json:"timestamp"`
}

func NewNotification(kind NotificationKind, message string, inventoryItemID *string, at time.Time) Notification {
	return Notification{
		ID:              uuid.NewString(),
		Kind:            kind,
		Message:         message,
		InventoryItemID: inventoryItemID,
		Timestamp:       at,
	}
}
