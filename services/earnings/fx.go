package earnings

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Module("earnings.service",
	fx.Provide(NewService),
	fx.Invoke(registerRoutes),
)

func registerRoutes(engine *gin.Engine, service *Service) {
	v1 := engine.Group("/v1")
	v1.POST("/earnings/views", service.recordView)
	v1.GET("/users/:id/balance", service.getBalance)
	v1.GET("/users/:id/earnings", service.getLedger)
	v1.GET("/users/:id/earnings/reconcile", service.reconcile)
}
