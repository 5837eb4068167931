package models

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Timestamps

	ProductTypeID uint            `gorm:"not null;index"`
	CategoryID    uint            `gorm:"not null;index"`
	Title         string          `gorm:"size:255;not null"`
	Description   string          `gorm:"type:text;not null"`
	Slug          string          `gorm:"size:255;uniqueIndex;not null"`
	RegularPrice  decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	DiscountPrice decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsActive      bool            `gorm:"not null"`

	// Relationships
	ProductType    ProductType                 `gorm:"foreignKey:ProductTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Category       Category                    `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Images         []ProductImage              `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Specifications []ProductSpecificationValue `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (p Product) String() string {
	return p.Title
}
