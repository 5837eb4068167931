package handlers

import (
	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/bazaar-dev/bazaar/internal/types"
)

// SerializeProduct builds the public product representation. Prices are
// rendered with exactly two decimals and images are resolved through
// imageURL.
func SerializeProduct(p *models.Product, imageURL func(string) string) types.ProductResponse {
	images := make([]types.ProductImageResponse, 0, len(p.Images))

	for _, img := range p.Images {
		images = append(images, types.ProductImageResponse{
			ID:    img.ID,
			Image: imageURL(img.Image),
		})
	}

	return types.ProductResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		RegularPrice:  p.RegularPrice.StringFixed(2),
		DiscountPrice: p.DiscountPrice.StringFixed(2),
		Category:      p.CategoryID,
		ProductType:   p.ProductTypeID,
		Slug:          p.Slug,
		Images:        images,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func SerializeUser(u *models.User) types.UserResponse {
	return types.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		DateJoined:  u.DateJoined,
	}
}
