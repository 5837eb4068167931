package router

import (
	"log"
	"time"

	"github.com/bazaar-dev/bazaar/internal/admin"
	"github.com/bazaar-dev/bazaar/internal/handlers"
	"github.com/bazaar-dev/bazaar/internal/middleware"
	"github.com/bazaar-dev/bazaar/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(server *handlers.Server) (*gin.Engine, error) {
	if err := admin.RegisterValidators(); err != nil {
		return nil, err
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.Default()
	r.SetHTMLTemplate(templates)

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     server.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if prefix, ok := server.Media.LocalPrefix(); ok {
		r.Static(prefix, server.Media.Root)
		log.Printf("Serving media from %s at %s", server.Media.Root, prefix)
	}

	r.GET("/", handlers.StoreHome)

	api := r.Group("/api")
	{
		api.GET("/", server.ProductList)
		api.GET("/health", handlers.HealthCheck)
	}

	r.POST("/admin/login", handlers.LoginUser)
	r.POST("/admin/logout", handlers.LogoutUser)

	staff := r.Group("/admin", middleware.StaffRequired())
	{
		staff.GET("/me", handlers.Me)
		staff.GET("/ws", server.AdminEvents)
		staff.GET("/categories/tree", handlers.CategoryTree)
		staff.POST("/products/:id/images", server.UploadProductImage)

		server.UserResource().Register(staff)
		server.AuthorResource().Register(staff)
		server.BlogCategoryResource().Register(staff)
		server.TopicResource().Register(staff)
		server.PostResource().Register(staff)
		server.TagResource().Register(staff)
		server.CategoryResource().Register(staff)
		server.ProductTypeResource().Register(staff)
		server.ProductSpecificationResource().Register(staff)
		server.ProductResource().Register(staff)
		server.ProductSpecificationValueResource().Register(staff)
		server.ProductImageResource().Register(staff)
	}

	return r, nil
}
