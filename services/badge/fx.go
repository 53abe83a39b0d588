package badge

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Module("badge.service",
	fx.Provide(NewService),
	fx.Invoke(registerRoutes),
)

func registerRoutes(engine *gin.Engine, service *Service) {
	v1 := engine.Group("/v1")
	v1.POST("/users/:id/badges", service.applyBadge)
	v1.GET("/users/:id/badges", service.getUserBadges)
	v1.DELETE("/badges/:id", service.deleteBadge)
}
