package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	optinHTTP "dinner-scheduler/internal/optin/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.mw.RequestID())
	srv.gin.Use(srv.mw.AccessLog())

	srv.l.Infof(context.Background(), "HTTP middlewares registered (environment: %s)", srv.environment)
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()
	api := srv.gin.Group("/api")

	if err := optinHTTP.RegisterBindings(); err != nil {
		return err
	}

	if err := srv.setupIngestionDomain(ctx, api); err != nil {
		return err
	}

	if srv.webhookHandler != nil {
		srv.setupWebhookDomain(ctx)
	} else {
		srv.l.Infof(ctx, "Calendly webhook not configured, skipping POST /webhooks/calendly")
	}

	if srv.appointmentUC != nil {
		srv.setupAppointmentDomain(ctx, api.Group("/missionary"))
	} else {
		srv.l.Infof(ctx, "Missionary access not configured, skipping /api/missionary routes")
	}

	if srv.optinUC != nil {
		srv.setupOptInDomain(ctx, api)
	} else {
		srv.l.Infof(ctx, "SMS opt-in not configured, skipping /api/sms routes")
	}

	return nil
}
