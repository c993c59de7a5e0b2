package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"dinner-scheduler/internal/middleware"
	"dinner-scheduler/internal/optin"
)

// RegisterRoutes maps the opt-in endpoints under /api.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	sms := rg.Group("/sms")
	{
		sms.POST("", h.InboundSMS)
		sms.POST("/opt-in", mw.RateLimit(), h.OptIn)
	}
	rg.POST("/webhooks/twilio", h.InboundSMS)
}

// RegisterBindings installs the custom validation rules on gin's validator.
// It must run before the first request that binds an opt-in body.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return optin.RegisterValidations(v)
}
