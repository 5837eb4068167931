package models

type Tag struct {
	BaseModel

	Name string `gorm:"size:100;uniqueIndex;not null"`
	Slug string `gorm:"size:100;uniqueIndex;not null"`

	Posts []Post `gorm:"many2many:post_tags;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
