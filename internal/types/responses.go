package types

import "time"

type UserResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	IsActive    bool      `json:"is_active"`
	DateJoined  time.Time `json:"date_joined"`
}

// ProductImageResponse is the nested image representation in product listings.
type ProductImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

// ProductResponse is the public representation of a product.
type ProductResponse struct {
	ID            uint                   `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	RegularPrice  string                 `json:"regular_price"`
	DiscountPrice string                 `json:"discount_price"`
	Category      uint                   `json:"category"`
	ProductType   uint                   `json:"product_type"`
	Slug          string                 `json:"slug"`
	Images        []ProductImageResponse `json:"images"`
	IsActive      bool                   `json:"is_active"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}
