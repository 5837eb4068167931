package models

import "gorm.io/datatypes"

type Author struct {
	BaseModel

	UserID    uint            `gorm:"not null;uniqueIndex"`
	FirstName string          `gorm:"size:90;not null;default:''"`
	LastName  string          `gorm:"size:90;not null;default:''"`
	Email     *string         `gorm:"size:254"`
	Bio       string          `gorm:"size:500;not null;default:''"`
	Location  string          `gorm:"size:30;not null;default:''"`
	BirthDate *datatypes.Date `gorm:"type:date"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Posts []Post `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (a Author) String() string {
	return a.FirstName
}
