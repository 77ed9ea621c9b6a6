package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"

	"personal-diary/api/handlers"
	"personal-diary/api/middleware"
	"personal-diary/cache"
	"personal-diary/db"
	_ "personal-diary/docs"
	"personal-diary/dto"
	"personal-diary/services"
	"personal-diary/titler"
)

// New wires the REST surface. tc may be nil when the response cache is
// disabled.
func New(svc *services.PostService, gen titler.Generator, tc *cache.TagCache) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if d := db.Database(); d != nil {
			if err := d.RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, dto.ErrorResponseDTO{Error: "mongo unavailable: " + err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/posts", handlers.ListPostsHandler(svc, tc))
		api.GET("/posts/date/:date", handlers.ListPostsByDateHandler(svc, tc))
		api.GET("/posts/:id", handlers.GetPostHandler(svc))
		api.POST("/posts", handlers.CreatePostHandler(svc, tc))
		api.PUT("/posts/:id", handlers.UpdatePostHandler(svc, tc))
		api.DELETE("/posts/:id", handlers.DeletePostHandler(svc, tc))

		api.POST("/ai/generate-title", handlers.GenerateTitleHandler(gen))
	}

	return r
}
