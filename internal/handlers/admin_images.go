package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/bazaar-dev/bazaar/db"
	"github.com/bazaar-dev/bazaar/internal/admin"
	"github.com/bazaar-dev/bazaar/internal/media"
	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/bazaar-dev/bazaar/internal/utils"
	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20

// UploadProductImage stores a multipart "image" file for a product and
// creates its ProductImage row. Optional form fields: alt_text, is_feature.
func (s *Server) UploadProductImage(ctx *gin.Context) {
	productID, err := utils.GetID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product

	if err := db.DB.WithContext(ctx.Request.Context()).First(&product, productID).Error; err != nil {
		admin.RespondError(ctx, err)
		return
	}

	header, err := ctx.FormFile("image")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "image: No file was submitted."})
		return
	}

	if header.Size > maxImageSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "image: File is too large."})
		return
	}

	file, err := header.Open()

	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer file.Close()

	name, err := s.Media.SaveImage(models.ImageUploadDir, header.Filename, file)

	if err != nil {
		if errors.Is(err, media.ErrNotImage) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "image: " + err.Error()})
			return
		}
		log.Printf("Failed to store uploaded image: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	image := models.ProductImage{
		ProductID: product.ID,
		Image:     name,
	}

	if alt := ctx.PostForm("alt_text"); alt != "" {
		if len([]rune(alt)) > 255 {
			s.removeImageFile(name)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "alt_text: Ensure this field has no more than 255 characters."})
			return
		}
		image.AltText = &alt
	}

	if feature := ctx.PostForm("is_feature"); feature != "" {
		image.IsFeature, err = strconv.ParseBool(feature)
		if err != nil {
			s.removeImageFile(name)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "is_feature: Must be a valid boolean."})
			return
		}
	}

	if err := db.DB.WithContext(ctx.Request.Context()).Create(&image).Error; err != nil {
		s.removeImageFile(name)
		admin.RespondError(ctx, err)
		return
	}

	if s.Hub != nil {
		s.Hub.Broadcast("product-images", admin.ActionCreated, image.ID)
	}

	ctx.JSON(http.StatusCreated, s.imageResponse(ctx, &image))
}
