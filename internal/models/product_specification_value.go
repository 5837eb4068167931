package models

// ProductSpecificationValue holds one product's value for a specification.
type ProductSpecificationValue struct {
	BaseModel

	ProductID       uint   `gorm:"not null;index"`
	SpecificationID uint   `gorm:"not null;index"`
	Value           string `gorm:"size:255;not null"`

	// Relationships
	Product       Product              `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Specification ProductSpecification `gorm:"foreignKey:SpecificationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (v ProductSpecificationValue) String() string {
	return v.Value
}
