package models

import "time"

type Post struct {
	BaseModel

	Title         string    `gorm:"size:255;not null"`
	Subtitle      string    `gorm:"size:500;not null"`
	Slug          string    `gorm:"size:255;uniqueIndex;not null"`
	AuthorID      uint      `gorm:"not null;index"`
	Body          string    `gorm:"type:text;not null"`
	Source        string    `gorm:"size:500;not null"`
	CreatedOn     time.Time `gorm:"autoCreateTime"`
	UpdatedOn     time.Time `gorm:"autoUpdateTime"`
	PublishedDate *time.Time

	// Relationships
	Author Author `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Tags   []Tag  `gorm:"many2many:post_tags;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
