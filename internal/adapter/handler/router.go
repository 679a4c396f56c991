package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/mom-service/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg        *config.Config
	momHandler *MOM
	authMW     echo.MiddlewareFunc
	rateMW     echo.MiddlewareFunc
	startedAt  time.Time
}

// NewRouter creates a new router. authMW and rateMW may be nil.
func NewRouter(cfg *config.Config, momHandler *MOM, authMW, rateMW echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:        cfg,
		momHandler: momHandler,
		authMW:     authMW,
		rateMW:     rateMW,
		startedAt:  time.Now(),
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	rt.setupMOMRoutes(v1)
}

// momRoutes is reported by the diagnostics endpoint
var momRoutes = []string{
	"POST /v1/mom/process-text",
	"POST /v1/mom/preview",
	"POST /v1/mom/save",
	"POST /v1/mom/generate-docx-from-template",
	"POST /v1/mom/regenerate-docx-from-template/:momId",
	"GET /v1/mom/history/:taskId",
	"GET /v1/mom/tasks-with-moms",
	"GET /v1/mom/view/:momId",
	"DELETE /v1/mom/:momId",
	"GET /v1/mom/test",
}

// setupMOMRoutes configures meeting-minutes routes
func (rt *Router) setupMOMRoutes(g *echo.Group) {
	var groupMW []echo.MiddlewareFunc
	if rt.authMW != nil {
		groupMW = append(groupMW, rt.authMW)
	}
	momGroup := g.Group("/mom", groupMW...)

	if rt.momHandler == nil {
		momGroup.Any("/*", rt.notImplemented)
		return
	}

	var processMW []echo.MiddlewareFunc
	if rt.rateMW != nil {
		processMW = append(processMW, rt.rateMW)
	}

	momGroup.POST("/process-text", rt.momHandler.ProcessText, processMW...)
	momGroup.POST("/preview", rt.momHandler.Preview)
	momGroup.POST("/save", rt.momHandler.Save)
	momGroup.POST("/generate-docx-from-template", rt.momHandler.Generate)
	momGroup.POST("/regenerate-docx-from-template/:momId", rt.momHandler.Regenerate)
	momGroup.GET("/history/:taskId", rt.momHandler.History)
	momGroup.GET("/tasks-with-moms", rt.momHandler.TasksWithMOMs)
	momGroup.GET("/view/:momId", rt.momHandler.View)
	momGroup.GET("/test", rt.momHandler.Diagnostics(momRoutes))
	momGroup.DELETE("/:momId", rt.momHandler.Delete)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
		"uptime":      time.Since(rt.startedAt).Round(time.Second).String(),
	})
}
