package http

import (
	"github.com/gin-gonic/gin"

	"dinner-scheduler/internal/middleware"
)

// RegisterRoutes mounts the trigger endpoints on the /api group.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.GET("/cron", mw.CronAuth(), h.Cron)
	rg.GET("/check-appointments", mw.APIKeyAuth(), h.CheckAppointments)
}
