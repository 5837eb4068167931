package models

// Category is a node in the store's category tree. Deleting a node removes
// its whole subtree.
type Category struct {
	BaseModel

	Name     string `gorm:"size:255;uniqueIndex;not null"`
	Slug     string `gorm:"size:255;uniqueIndex;not null"`
	ParentID *uint  `gorm:"index"`
	IsActive bool   `gorm:"not null"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Children []Category `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Products []Product  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (c Category) String() string {
	return c.Name
}
