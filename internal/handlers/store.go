package handlers

import (
	"net/http"

	"github.com/bazaar-dev/bazaar/db"
	"github.com/bazaar-dev/bazaar/internal/admin"
	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/bazaar-dev/bazaar/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StoreHome renders the landing page.
func StoreHome(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "store/index.html", gin.H{"title": "Store"})
}

// ProductList returns every product, newest first.
func (s *Server) ProductList(ctx *gin.Context) {
	var products []models.Product

	err := db.DB.WithContext(ctx.Request.Context()).
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Order("created_at DESC").
		Order("id DESC").
		Find(&products).Error

	if err != nil {
		admin.RespondError(ctx, err)
		return
	}

	imageURL := s.imageURL(ctx)
	response := make([]types.ProductResponse, 0, len(products))

	for i := range products {
		response = append(response, SerializeProduct(&products[i], imageURL))
	}

	ctx.JSON(http.StatusOK, response)
}
