package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hostforge/hostforge/internal/config"
	"github.com/hostforge/hostforge/internal/middleware"
	"github.com/hostforge/hostforge/internal/modules/handler"
	"github.com/hostforge/hostforge/internal/modules/serializer"
)

type RouterDeps struct {
	Config          *config.Config
	Log             *zap.Logger
	CapsuleHandler  *handler.CapsuleHandler
	MonitorHandler  *handler.MonitorHandler
	SecurityHandler *handler.SecurityHandler
	ChatHandler     *handler.ChatHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	v1 := r.Group("/api/v1")
	{
		capsule := v1.Group("/capsule")
		{
			capsule.GET("", d.CapsuleHandler.ListCapsules)
			capsule.POST("", d.CapsuleHandler.CreateCapsule)
			capsule.GET("/:capsule_id", d.CapsuleHandler.GetCapsule)
			capsule.PATCH("/:capsule_id", d.CapsuleHandler.PatchCapsule)
			capsule.DELETE("/:capsule_id", d.CapsuleHandler.DeleteCapsule)
		}

		monitor := v1.Group("/monitor")
		{
			monitor.GET("/metrics", d.MonitorHandler.GetMetrics)
			monitor.GET("/stream", d.MonitorHandler.StreamMetrics)
			monitor.POST("/alert/resolve", d.MonitorHandler.ResolveAlert)
		}

		security := v1.Group("/security")
		{
			security.GET("/overview", d.SecurityHandler.GetOverview)
		}

		chat := v1.Group("/chat")
		{
			chat.GET("/messages", d.ChatHandler.GetMessages)
			chat.POST("/messages", d.ChatHandler.SendMessage)
		}
	}
	return r
}
