package models

// ProductType lists the different kinds of products that are for sale.
type ProductType struct {
	BaseModel

	Name     string `gorm:"size:255;not null"`
	IsActive bool   `gorm:"not null"`

	// Relationships
	Specifications []ProductSpecification `gorm:"foreignKey:ProductTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Products       []Product              `gorm:"foreignKey:ProductTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (t ProductType) String() string {
	return t.Name
}
