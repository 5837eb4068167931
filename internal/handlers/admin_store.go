package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/bazaar-dev/bazaar/db"
	"github.com/bazaar-dev/bazaar/internal/admin"
	"github.com/bazaar-dev/bazaar/internal/apperr"
	"github.com/bazaar-dev/bazaar/internal/catalog"
	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/bazaar-dev/bazaar/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Slug     string `json:"slug" binding:"required,max=255,slug"`
	ParentID *uint  `json:"parent_id"`
	IsActive *bool  `json:"is_active"`
}

type CategoryResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID *uint  `json:"parent_id"`
	IsActive bool   `json:"is_active"`
}

type ProductTypeRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	IsActive *bool  `json:"is_active"`
}

type ProductTypeResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type ProductSpecificationRequest struct {
	ProductTypeID uint   `json:"product_type_id" binding:"required"`
	Name          string `json:"name" binding:"required,max=255"`
}

type ProductSpecificationResponse struct {
	ID            uint   `json:"id"`
	ProductTypeID uint   `json:"product_type_id"`
	Name          string `json:"name"`
}

type ProductRequest struct {
	ProductTypeID uint             `json:"product_type_id" binding:"required"`
	CategoryID    uint             `json:"category_id" binding:"required"`
	Title         string           `json:"title" binding:"required,max=255"`
	Description   string           `json:"description"`
	Slug          string           `json:"slug" binding:"required,max=255,slug"`
	RegularPrice  *decimal.Decimal `json:"regular_price" binding:"required"`
	DiscountPrice *decimal.Decimal `json:"discount_price" binding:"required"`
	IsActive      *bool            `json:"is_active"`
}

type ProductSpecificationValueRequest struct {
	ProductID       uint   `json:"product_id" binding:"required"`
	SpecificationID uint   `json:"specification_id" binding:"required"`
	Value           string `json:"value" binding:"required,max=255"`
}

type ProductSpecificationValueResponse struct {
	ID              uint   `json:"id"`
	ProductID       uint   `json:"product_id"`
	SpecificationID uint   `json:"specification_id"`
	Value           string `json:"value"`
}

type ProductImageRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Image     string  `json:"image" binding:"max=100"`
	AltText   *string `json:"alt_text" binding:"omitempty,max=255"`
	IsFeature bool    `json:"is_feature"`
}

type ProductImageResponse struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	Image     string    `json:"image"`
	URL       string    `json:"url"`
	AltText   *string   `json:"alt_text"`
	IsFeature bool      `json:"is_feature"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func activeFlag(flag *bool, current bool, creating bool) bool {
	if flag != nil {
		return *flag
	}
	if creating {
		return true
	}
	return current
}

func (s *Server) CategoryResource() *admin.Resource[models.Category, CategoryRequest] {
	return &admin.Resource[models.Category, CategoryRequest]{
		Name:  "categories",
		Order: "name",
		Apply: func(tx *gorm.DB, in *CategoryRequest, m *models.Category) error {
			if in.ParentID != nil && m.ID != 0 {
				if err := checkCategoryParent(tx, m.ID, *in.ParentID); err != nil {
					return err
				}
			}

			m.Name = in.Name
			m.Slug = in.Slug
			m.ParentID = in.ParentID
			m.IsActive = activeFlag(in.IsActive, m.IsActive, m.ID == 0)
			return nil
		},
		View: func(_ *gin.Context, m *models.Category) any {
			return CategoryResponse{ID: m.ID, Name: m.Name, Slug: m.Slug, ParentID: m.ParentID, IsActive: m.IsActive}
		},
		Events: s.Hub,
	}
}

// checkCategoryParent rejects moving category id below itself or one of its
// descendants.
func checkCategoryParent(tx *gorm.DB, id, parent uint) error {
	var rows []models.Category

	if err := tx.Select("id", "parent_id").Find(&rows).Error; err != nil {
		return err
	}

	parents := make(map[uint]*uint, len(rows))
	for _, row := range rows {
		parents[row.ID] = row.ParentID
	}

	if catalog.WouldCycle(parents, id, parent) {
		return apperr.Invalid("parent_id", "A node may not be made a child of itself or any of its descendants.")
	}

	return nil
}

// CategoryTree returns the store categories as a nested tree.
func CategoryTree(ctx *gin.Context) {
	var categories []models.Category

	if err := db.DB.WithContext(ctx.Request.Context()).Order("name").Find(&categories).Error; err != nil {
		admin.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, catalog.BuildTree(categories))
}

func (s *Server) ProductTypeResource() *admin.Resource[models.ProductType, ProductTypeRequest] {
	return &admin.Resource[models.ProductType, ProductTypeRequest]{
		Name:  "product-types",
		Order: "name",
		Apply: func(_ *gorm.DB, in *ProductTypeRequest, m *models.ProductType) error {
			m.Name = in.Name
			m.IsActive = activeFlag(in.IsActive, m.IsActive, m.ID == 0)
			return nil
		},
		View: func(_ *gin.Context, m *models.ProductType) any {
			return ProductTypeResponse{ID: m.ID, Name: m.Name, IsActive: m.IsActive}
		},
		Events: s.Hub,
	}
}

func (s *Server) ProductSpecificationResource() *admin.Resource[models.ProductSpecification, ProductSpecificationRequest] {
	return &admin.Resource[models.ProductSpecification, ProductSpecificationRequest]{
		Name:  "product-specifications",
		Order: "name",
		Apply: func(_ *gorm.DB, in *ProductSpecificationRequest, m *models.ProductSpecification) error {
			m.ProductTypeID = in.ProductTypeID
			m.Name = in.Name
			return nil
		},
		View: func(_ *gin.Context, m *models.ProductSpecification) any {
			return ProductSpecificationResponse{ID: m.ID, ProductTypeID: m.ProductTypeID, Name: m.Name}
		},
		Events: s.Hub,
	}
}

func (s *Server) ProductResource() *admin.Resource[models.Product, ProductRequest] {
	return &admin.Resource[models.Product, ProductRequest]{
		Name:    "products",
		Preload: []string{"Images"},
		Order:   "created_at DESC",
		Apply: func(_ *gorm.DB, in *ProductRequest, m *models.Product) error {
			if err := utils.ValidatePrice("regular_price", *in.RegularPrice); err != nil {
				return err
			}

			if err := utils.ValidatePrice("discount_price", *in.DiscountPrice); err != nil {
				return err
			}

			m.ProductTypeID = in.ProductTypeID
			m.CategoryID = in.CategoryID
			m.Title = in.Title
			m.Description = in.Description
			m.Slug = in.Slug
			m.RegularPrice = *in.RegularPrice
			m.DiscountPrice = *in.DiscountPrice
			m.IsActive = activeFlag(in.IsActive, m.IsActive, m.ID == 0)
			return nil
		},
		AfterDelete: func(m *models.Product) {
			for _, img := range m.Images {
				s.removeImageFile(img.Image)
			}
		},
		View: func(ctx *gin.Context, m *models.Product) any {
			return SerializeProduct(m, s.imageURL(ctx))
		},
		Events: s.Hub,
	}
}

func (s *Server) ProductSpecificationValueResource() *admin.Resource[models.ProductSpecificationValue, ProductSpecificationValueRequest] {
	return &admin.Resource[models.ProductSpecificationValue, ProductSpecificationValueRequest]{
		Name:  "product-specification-values",
		Order: "id",
		Apply: func(_ *gorm.DB, in *ProductSpecificationValueRequest, m *models.ProductSpecificationValue) error {
			m.ProductID = in.ProductID
			m.SpecificationID = in.SpecificationID
			m.Value = in.Value
			return nil
		},
		View: func(_ *gin.Context, m *models.ProductSpecificationValue) any {
			return ProductSpecificationValueResponse{
				ID:              m.ID,
				ProductID:       m.ProductID,
				SpecificationID: m.SpecificationID,
				Value:           m.Value,
			}
		},
		Events: s.Hub,
	}
}

func (s *Server) ProductImageResource() *admin.Resource[models.ProductImage, ProductImageRequest] {
	return &admin.Resource[models.ProductImage, ProductImageRequest]{
		Name:  "product-images",
		Order: "id",
		Apply: func(_ *gorm.DB, in *ProductImageRequest, m *models.ProductImage) error {
			m.ProductID = in.ProductID
			m.AltText = in.AltText
			m.IsFeature = in.IsFeature

			switch {
			case in.Image != "":
				m.Image = in.Image
			case m.Image == "":
				m.Image = models.DefaultImage
			}

			return nil
		},
		AfterUpdate: func(before, after *models.ProductImage) {
			if before.Image != after.Image {
				s.removeImageFile(before.Image)
			}
		},
		AfterDelete: func(m *models.ProductImage) {
			s.removeImageFile(m.Image)
		},
		View: func(ctx *gin.Context, m *models.ProductImage) any {
			return s.imageResponse(ctx, m)
		},
		Events: s.Hub,
	}
}

func (s *Server) imageResponse(ctx *gin.Context, m *models.ProductImage) ProductImageResponse {
	return ProductImageResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Image:     m.Image,
		URL:       s.imageURL(ctx)(m.Image),
		AltText:   m.AltText,
		IsFeature: m.IsFeature,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (s *Server) removeImageFile(name string) {
	if err := s.Media.Delete(name, models.DefaultImage); err != nil {
		log.Printf("Failed to remove image file %s: %v", name, err)
	}
}
