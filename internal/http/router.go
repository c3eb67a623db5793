package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/F3-Nation/slack-reminders/internal/http/handlers"
	"github.com/F3-Nation/slack-reminders/internal/http/middleware"
)

type RouterDependencies struct {
	Logger        *slog.Logger
	HealthHandler *handlers.HealthHandler
	JobHandler    *handlers.JobHandler
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))

	r.GET("/healthz", deps.HealthHandler.Healthz)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/jobs/backblasts", deps.JobHandler.TriggerBackblasts)
		api.POST("/jobs/emergency-contacts", deps.JobHandler.TriggerEmergencyContacts)
	}

	return r
}
