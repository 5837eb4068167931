package models

// ProductSpecification is a feature shared by every product of a type, e.g.
// "screen size" for laptops.
type ProductSpecification struct {
	BaseModel

	ProductTypeID uint   `gorm:"not null;index"`
	Name          string `gorm:"size:255;not null"`

	// Relationships
	ProductType ProductType                 `gorm:"foreignKey:ProductTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Values      []ProductSpecificationValue `gorm:"foreignKey:SpecificationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (s ProductSpecification) String() string {
	return s.Name
}
