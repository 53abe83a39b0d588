package user

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(NewService),
	fx.Invoke(registerRoutes),
)

func registerRoutes(engine *gin.Engine, service *Service) {
	v1 := engine.Group("/v1")
	v1.GET("/users/:id", service.getUser)
	v1.PATCH("/users/:id", service.updateProfile)
	v1.POST("/users/:id/follow", service.followUser)
	v1.DELETE("/users/:id/follow", service.unfollowUser)
	v1.GET("/officials", service.listOfficials)
}
