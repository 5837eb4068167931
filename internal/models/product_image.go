package models

const (
	// ImageUploadDir is the media-relative directory product images are stored in.
	ImageUploadDir = "store/images"
	// DefaultImage is used when a product image is created without a file.
	DefaultImage = "store/images/default.png"
)

type ProductImage struct {
	BaseModel
	Timestamps

	ProductID uint    `gorm:"not null;index"`
	Image     string  `gorm:"size:100;not null;default:'store/images/default.png'"`
	AltText   *string `gorm:"size:255"`
	IsFeature bool    `gorm:"not null;default:false"`

	Product Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
