package http

import (
	"github.com/gin-gonic/gin"

	"dinner-scheduler/internal/middleware"
)

// RegisterRoutes maps the missionary endpoints. Reads require a session.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("/verify", mw.RateLimit(), h.Verify)
	rg.POST("/logout", h.Logout)
	rg.GET("/test-env", h.TestEnv)

	appointments := rg.Group("/appointments")
	{
		appointments.GET("", mw.SessionAuth(), h.List)
		appointments.POST("", mw.SessionAuth(), h.List)
		appointments.POST("/delete", mw.SessionAuth(), h.Hide)
	}
	rg.GET("/appointments.ics", mw.SessionAuth(), h.Calendar)
}
