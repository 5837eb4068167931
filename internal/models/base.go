package models

import "time"

// BaseModel is embedded by entities that carry their own primary key only.
// gorm.Model is avoided because soft deletes would bypass the ON DELETE
// rules the schema depends on.
type BaseModel struct {
	ID uint `gorm:"primaryKey"`
}

// Timestamps is embedded by entities with created/updated columns.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (b BaseModel) GetID() uint {
	return b.ID
}
