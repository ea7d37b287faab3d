package models

import (
	"time"

	"hearth/internal/uuid"

	"gorm.io/gorm"
)

// Base holds the id and timestamp columns shared by every table.
// Deletes are soft; list queries exclude deleted rows via the gorm
// DeletedAt index.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a UUIDv7 unless the caller set an id already.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
