package models

type Topic struct {
	BaseModel

	Name        string `gorm:"size:255;not null"`
	CategoryID  uint   `gorm:"not null;index"`
	Description string `gorm:"type:text;not null"`

	Category BlogCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
