//go:build integration
// +build integration

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bazaar-dev/bazaar/db"
	"github.com/bazaar-dev/bazaar/internal/apperr"
	"github.com/bazaar-dev/bazaar/internal/auth"
	"github.com/bazaar-dev/bazaar/internal/config"
	"github.com/bazaar-dev/bazaar/internal/media"
	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/bazaar-dev/bazaar/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var skipReason string

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("bazaar"),
		postgres.WithUsername("bazaar"),
		postgres.WithPassword("bazaar"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		skipReason = fmt.Sprintf("PostgreSQL container unavailable: %v", err)
		os.Exit(m.Run())
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Failed to get connection string: %v", err)
	}

	cfg := &config.Config{DBDriver: config.DriverPostgres, DBURL: connStr}
	if err := db.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	if err := auth.InitJWTSecret("integration-secret"); err != nil {
		log.Fatal(err)
	}

	code := m.Run()

	db.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate container: %v", err)
	}

	os.Exit(code)
}

type harness struct {
	t     *testing.T
	r     *gin.Engine
	media *media.Storage
	token string
}

func setup(t *testing.T) *harness {
	t.Helper()

	if skipReason != "" {
		t.Skip(skipReason)
	}

	require.NoError(t, db.DB.Exec(`TRUNCATE users, authors, blog_categories, topics, tags, posts, post_tags,
		categories, product_types, product_specifications, products,
		product_specification_values, product_images RESTART IDENTITY CASCADE`).Error)

	hash, err := auth.HashPassword("staff-password")
	require.NoError(t, err)

	staff := models.User{Username: "staff", PasswordHash: hash, IsStaff: true, IsActive: true}
	require.NoError(t, db.DB.Create(&staff).Error)

	token, err := auth.GenerateJWT(staff.ID, staff.Username)
	require.NoError(t, err)

	server := newTestServer(t)

	r, err := router.NewRouter(server)
	require.NoError(t, err)

	return &harness{t: t, r: r, media: server.Media, token: token}
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)

	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	return w
}

// create posts body and returns the new row's id.
func (h *harness) create(path string, body any) uint {
	h.t.Helper()

	w := h.do(http.MethodPost, path, body)
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.ID
}

func (h *harness) catalogue() (typeID, categoryID, productID uint) {
	typeID = h.create("/admin/product-types", gin.H{"name": "Shoes"})
	categoryID = h.create("/admin/categories", gin.H{"name": "Footwear", "slug": "footwear"})
	productID = h.create("/admin/products", gin.H{
		"product_type_id": typeID,
		"category_id":     categoryID,
		"title":           "Trail runner",
		"slug":            "trail-runner",
		"regular_price":   "120.00",
		"discount_price":  "99.99",
	})
	return typeID, categoryID, productID
}

func count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.DB.Model(model).Count(&n).Error)
	return n
}

func TestProductListEmpty(t *testing.T) {
	h := setup(t)

	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestProductListOneProduct(t *testing.T) {
	h := setup(t)
	_, categoryID, productID := h.catalogue()

	h.create("/admin/product-images", gin.H{"product_id": productID})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Host = "shop.test"
	h.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)

	keys := make([]string, 0, len(products[0]))
	for k := range products[0] {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{
		"id", "title", "description", "regular_price", "discount_price", "category",
		"product_type", "slug", "images", "is_active", "created_at", "updated_at",
	}, keys)

	p := products[0]
	assert.Equal(t, "120.00", p["regular_price"])
	assert.Equal(t, "99.99", p["discount_price"])
	assert.Equal(t, float64(categoryID), p["category"])
	assert.Equal(t, true, p["is_active"])

	images := p["images"].([]any)
	require.Len(t, images, 1)
	assert.Equal(t, "http://shop.test/media/store/images/default.png", images[0].(map[string]any)["image"])
}

func TestPriceBounds(t *testing.T) {
	h := setup(t)
	typeID, categoryID, _ := h.catalogue()

	w := h.do(http.MethodPost, "/admin/products", gin.H{
		"product_type_id": typeID,
		"category_id":     categoryID,
		"title":           "Too pricey",
		"slug":            "too-pricey",
		"regular_price":   "10000.00",
		"discount_price":  "1.00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "The Price Must Be Between 0 to 9999.99")

	// The column itself rejects what skips validation.
	p := models.Product{
		ProductTypeID: typeID,
		CategoryID:    categoryID,
		Title:         "Direct",
		Slug:          "direct",
		RegularPrice:  decimal.RequireFromString("10000.00"),
		DiscountPrice: decimal.RequireFromString("1.00"),
	}
	err := apperr.Translate(db.DB.Create(&p).Error)
	assert.ErrorIs(t, err, apperr.ErrOutOfRange)
}

func TestDuplicateSlugsRejected(t *testing.T) {
	h := setup(t)

	h.create("/admin/blog-categories", gin.H{"name": "News", "slug": "news", "description": "Latest"})
	w := h.do(http.MethodPost, "/admin/blog-categories", gin.H{"name": "Other", "slug": "news", "description": "Dup"})
	assert.Equal(t, http.StatusConflict, w.Code)

	h.create("/admin/categories", gin.H{"name": "Bags", "slug": "bags"})
	w = h.do(http.MethodPost, "/admin/categories", gin.H{"name": "Totes", "slug": "bags"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRestrictedProductTypeDelete(t *testing.T) {
	h := setup(t)
	typeID, _, productID := h.catalogue()

	w := h.do(http.MethodDelete, fmt.Sprintf("/admin/product-types/%d", typeID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.do(http.MethodDelete, fmt.Sprintf("/admin/products/%d", productID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = h.do(http.MethodDelete, fmt.Sprintf("/admin/product-types/%d", typeID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestProductDeleteCascades(t *testing.T) {
	h := setup(t)
	typeID, _, productID := h.catalogue()

	specID := h.create("/admin/product-specifications", gin.H{"product_type_id": typeID, "name": "Size"})
	h.create("/admin/product-specification-values", gin.H{"product_id": productID, "specification_id": specID, "value": "42"})
	h.create("/admin/product-images", gin.H{"product_id": productID, "alt_text": "side view"})

	require.EqualValues(t, 1, count(t, &models.ProductImage{}))
	require.EqualValues(t, 1, count(t, &models.ProductSpecificationValue{}))

	// The specification is still in use.
	w := h.do(http.MethodDelete, fmt.Sprintf("/admin/product-specifications/%d", specID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.do(http.MethodDelete, fmt.Sprintf("/admin/products/%d", productID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.EqualValues(t, 0, count(t, &models.ProductImage{}))
	assert.EqualValues(t, 0, count(t, &models.ProductSpecificationValue{}))
	assert.EqualValues(t, 1, count(t, &models.ProductSpecification{}))
}

func TestCategoryTree(t *testing.T) {
	h := setup(t)

	rootID := h.create("/admin/categories", gin.H{"name": "Clothing", "slug": "clothing"})
	childID := h.create("/admin/categories", gin.H{"name": "Shirts", "slug": "shirts", "parent_id": rootID})
	grandchildID := h.create("/admin/categories", gin.H{"name": "Polos", "slug": "polos", "parent_id": childID})

	w := h.do(http.MethodPut, fmt.Sprintf("/admin/categories/%d", rootID), gin.H{"name": "Clothing", "slug": "clothing", "parent_id": grandchildID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodGet, "/admin/categories/tree", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tree []struct {
		Name     string `json:"name"`
		Children []struct {
			Name     string `json:"name"`
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tree))
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Polos", tree[0].Children[0].Children[0].Name)

	w = h.do(http.MethodDelete, fmt.Sprintf("/admin/categories/%d", rootID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.EqualValues(t, 0, count(t, &models.Category{}))
}

func TestBlogDeletionRules(t *testing.T) {
	h := setup(t)

	userID := h.create("/admin/users", gin.H{"username": "writer", "password": "writer-password"})
	authorID := h.create("/admin/authors", gin.H{"user_id": userID, "first_name": "Ada", "last_name": "Lovelace", "birth_date": "1815-12-10"})

	postID := h.create("/admin/posts", gin.H{
		"title":     "Hello",
		"subtitle":  "First post",
		"slug":      "hello",
		"author_id": authorID,
		"body":      "Body",
		"source":    "me",
		"tags":      []string{"Go", "Web", "Go"},
	})

	w := h.do(http.MethodGet, fmt.Sprintf("/admin/posts/%d", postID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var post struct {
		Tags []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.ElementsMatch(t, []string{"Go", "Web"}, post.Tags)

	w = h.do(http.MethodGet, "/admin/authors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"first_name":"Ada","last_name":"Lovelace"}]`, authorID), w.Body.String())

	w = h.do(http.MethodDelete, fmt.Sprintf("/admin/authors/%d", authorID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	categoryID := h.create("/admin/blog-categories", gin.H{"name": "News", "slug": "news", "description": "Latest"})
	h.create("/admin/topics", gin.H{"name": "Releases", "category_id": categoryID, "description": "Ship notes"})
	w = h.do(http.MethodDelete, fmt.Sprintf("/admin/blog-categories/%d", categoryID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.do(http.MethodDelete, fmt.Sprintf("/admin/posts/%d", postID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = h.do(http.MethodDelete, fmt.Sprintf("/admin/users/%d", userID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.EqualValues(t, 0, count(t, &models.Author{}))
}

type uploadedImage struct {
	ID        uint   `json:"id"`
	Image     string `json:"image"`
	IsFeature bool   `json:"is_feature"`
}

func (h *harness) upload(productID uint) uploadedImage {
	h.t.Helper()

	var img bytes.Buffer
	require.NoError(h.t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 1, 1))))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "shoe.png")
	require.NoError(h.t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(h.t, err)
	require.NoError(h.t, mw.WriteField("is_feature", "true"))
	require.NoError(h.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/admin/products/%d/images", productID), &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+h.token)

	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())

	var out uploadedImage
	require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (h *harness) mediaFile(name string) string {
	return filepath.Join(h.media.Root, filepath.FromSlash(name))
}

func TestUploadProductImage(t *testing.T) {
	h := setup(t)
	_, _, productID := h.catalogue()

	out := h.upload(productID)

	assert.Regexp(t, `^store/images/[0-9a-f-]{36}\.png$`, out.Image)
	assert.True(t, out.IsFeature)
	assert.FileExists(t, h.mediaFile(out.Image))
}

func TestReplacingImageRemovesOldFile(t *testing.T) {
	h := setup(t)
	_, _, productID := h.catalogue()

	first := h.upload(productID)
	second := h.upload(productID)

	w := h.do(http.MethodPut, fmt.Sprintf("/admin/product-images/%d", first.ID), gin.H{
		"product_id": productID,
		"image":      second.Image,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.NoFileExists(t, h.mediaFile(first.Image))
	assert.FileExists(t, h.mediaFile(second.Image))

	w = h.do(http.MethodPut, fmt.Sprintf("/admin/product-images/%d", first.ID), gin.H{
		"product_id": productID,
		"image":      second.Image,
		"alt_text":   "side view",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.FileExists(t, h.mediaFile(second.Image))
}

func TestLogin(t *testing.T) {
	h := setup(t)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(gin.H{"username": "staff", "password": "staff-password"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", &buf)
	req.Header.Set("Content-Type", "application/json")
	h.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	req = httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: out.Token})
	w = httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"staff"`)
}

func TestStaffRequiredRejectsNonStaff(t *testing.T) {
	h := setup(t)

	hash, err := auth.HashPassword("member-password")
	require.NoError(t, err)

	member := models.User{Username: "member", PasswordHash: hash, IsActive: true}
	require.NoError(t, db.DB.Create(&member).Error)

	retired := models.User{Username: "retired", PasswordHash: hash, IsStaff: true}
	require.NoError(t, db.DB.Create(&retired).Error)

	for _, user := range []models.User{member, retired} {
		token, err := auth.GenerateJWT(user.ID, user.Username)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		h.r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, user.Username)
	}
}
