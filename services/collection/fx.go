package collection

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Module("collection.service",
	fx.Provide(NewService),
	fx.Invoke(registerRoutes),
)

func registerRoutes(engine *gin.Engine, service *Service) {
	v1 := engine.Group("/v1")
	v1.GET("/collections", service.listCollections)
	v1.GET("/collections/:id", service.getCollection)
	v1.POST("/collections", service.createCollection)
	v1.PATCH("/collections/:id", service.updateCollection)
	v1.DELETE("/collections/:id", service.deleteCollection)
	v1.GET("/collections/:id/clips", service.listClips)
	v1.POST("/collections/:id/clips", service.addClip)
	v1.POST("/collections/:id/view", service.recordView)
}
