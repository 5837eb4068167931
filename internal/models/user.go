package models

import "time"

type User struct {
	BaseModel

	Username     string    `gorm:"size:150;uniqueIndex;not null"`
	Email        string    `gorm:"size:254"`
	PasswordHash string    `gorm:"not null"`
	IsStaff      bool      `gorm:"not null;default:false"`
	IsSuperuser  bool      `gorm:"not null;default:false"`
	IsActive     bool      `gorm:"not null"`
	DateJoined   time.Time `gorm:"autoCreateTime"`

	// Relationships
	Author *Author `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
