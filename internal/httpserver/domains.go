package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	appointmentHTTP "dinner-scheduler/internal/appointment/delivery/http"
	ingestionHTTP "dinner-scheduler/internal/ingestion/delivery/http"
	optinHTTP "dinner-scheduler/internal/optin/delivery/http"
	"dinner-scheduler/internal/webhook"
)

// Each setup function follows the same steps:
//  1. Create the HTTP handler from the use case
//  2. Register its routes on the group, with middleware
func (srv HTTPServer) setupIngestionDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := ingestionHTTP.New(srv.l, srv.ingestionUC, srv.cronLookback)
	ingestionHTTP.RegisterRoutes(api, h, srv.mw)

	srv.l.Infof(ctx, "Ingestion triggers registered at GET /api/cron and GET /api/check-appointments")
	return nil
}

func (srv HTTPServer) setupWebhookDomain(ctx context.Context) {
	webhook.RegisterRoutes(srv.gin, srv.webhookHandler)
	srv.l.Infof(ctx, "Calendly webhook registered at POST /webhooks/calendly")
}

func (srv HTTPServer) setupAppointmentDomain(ctx context.Context, rg *gin.RouterGroup) {
	h := appointmentHTTP.New(srv.l, srv.appointmentUC, srv.formatter)
	appointmentHTTP.RegisterRoutes(rg, h, srv.mw)
	srv.l.Infof(ctx, "Missionary routes registered under /api/missionary")
}

func (srv HTTPServer) setupOptInDomain(ctx context.Context, api *gin.RouterGroup) {
	h := optinHTTP.New(srv.l, srv.optinUC, optinHTTP.Config{
		TwilioAuthToken: srv.twilioToken,
		PublicURL:       srv.publicURL,
	})
	optinHTTP.RegisterRoutes(api, h, srv.mw)
	srv.l.Infof(ctx, "SMS routes registered under /api/sms")
}
