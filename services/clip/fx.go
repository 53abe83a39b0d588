package clip

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Module("clip.service",
	fx.Provide(NewService),
	fx.Invoke(registerRoutes),
)

func registerRoutes(engine *gin.Engine, service *Service) {
	v1 := engine.Group("/v1")
	v1.GET("/clips", service.listClips)
	v1.GET("/feed", service.listFeed)
	v1.GET("/clips/:id", service.getClip)
	v1.POST("/clips", service.createClip)
	v1.PATCH("/clips/:id", service.updateClip)
	v1.DELETE("/clips/:id", service.deleteClip)
	v1.POST("/clips/:id/view", service.recordView)
}
