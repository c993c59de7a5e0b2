package webhook

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"dinner-scheduler/internal/ingestion"
	calendlyProvider "dinner-scheduler/internal/provider/calendly"
	pkgLog "dinner-scheduler/pkg/log"
	pkgResponse "dinner-scheduler/pkg/response"
)

const (
	HeaderCalendlySignature = "Calendly-Webhook-Signature"

	maxBodyBytes = 1 << 20
)

// HandleCalendlyWebhook godoc
// @Summary     Calendly webhook
// @Description Verifies the signature, acknowledges, then notifies missionaries in the background.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       Calendly-Webhook-Signature header string true "HMAC-SHA256 signature"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Malformed payload"
// @Failure     401 {object} response.Resp "Invalid signature"
// @Failure     403 {object} response.Resp "IP not allowed"
// @Failure     429 {object} response.Resp "Rate limit exceeded"
// @Router      /webhooks/calendly [POST]
func (h *Handler) HandleCalendlyWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandleCalendlyWebhook: read body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "webhook.HandleCalendlyWebhook: %v", err)
		pkgResponse.Forbidden(c)
		return
	}

	// Nothing is parsed or mutated before the signature checks out.
	if err := h.security.ValidateCalendlySignature(body, c.GetHeader(HeaderCalendlySignature)); err != nil {
		if errors.Is(err, ErrSigningKeyMissing) {
			h.l.Errorf(ctx, "webhook.HandleCalendlyWebhook: %v", err)
		} else {
			h.l.Warnf(ctx, "webhook.HandleCalendlyWebhook: %v", err)
		}
		pkgResponse.Unauthorized(c, "Invalid signature")
		return
	}

	if err := h.security.CheckRateLimit("calendly"); err != nil {
		h.l.Warnf(ctx, "webhook.HandleCalendlyWebhook: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	event, err := ParseCalendlyEvent(body)
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandleCalendlyWebhook: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	switch event.Type {
	case EventInviteeCreated, EventInviteeCanceled:
	default:
		h.l.Infof(ctx, "webhook.HandleCalendlyWebhook: ignoring event type %s", event.Type)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported event type"})
		return
	}

	h.inflight.Add(1)
	go h.processAsync(pkgLog.RequestIDFromContext(ctx), event)

	pkgResponse.OK(c, gin.H{"status": "accepted"})
}

// processAsync runs detached from the request so a slow fan-out cannot hold
// the provider's callback open.
func (h *Handler) processAsync(requestID string, event CalendlyEvent) {
	defer h.inflight.Done()

	ctx, cancel := context.WithTimeout(pkgLog.WithRequestID(context.Background(), requestID), h.processTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			h.l.Errorf(ctx, "webhook.processAsync: recovered panic: %v", r)
		}
	}()

	switch event.Type {
	case EventInviteeCreated:
		h.processCreated(ctx, event)
	case EventInviteeCanceled:
		h.processCanceled(ctx, event)
	}
}

func (h *Handler) processCreated(ctx context.Context, event CalendlyEvent) {
	attendee := event.Attendee
	// Legacy payloads only carry the invitee URI; the dedup key must be the
	// scheduled event URI or the next poll announces the booking again.
	unresolved := event.Event.ID == event.InviteeURI
	needsFetch := len(attendee.Answers) == 0 || unresolved
	if needsFetch && h.invitees != nil && event.InviteeURI != "" {
		inv, err := h.invitees.GetInvitee(ctx, event.InviteeURI)
		if err != nil {
			h.l.Warnf(ctx, "webhook.processCreated: fetch invitee %s: %v", event.InviteeURI, err)
		} else {
			full := calendlyProvider.ToAttendee(*inv)
			if len(attendee.Answers) == 0 {
				attendee.Answers = full.Answers
			}
			if attendee.Phone == "" {
				attendee.Phone = full.Phone
			}
			if unresolved && inv.Event != "" {
				event.Event.ID = inv.Event
				unresolved = false
			}
		}
	}
	if unresolved {
		h.l.Warnf(ctx, "webhook.processCreated: no scheduled event URI for invitee %s", event.InviteeURI)
	}

	out, err := h.ingestionUC.ProcessCreated(ctx, ingestion.CreatedInput{Event: event.Event, Attendee: attendee})
	if err != nil {
		h.l.Errorf(ctx, "webhook.processCreated: %v", err)
		return
	}
	if out.Duplicate {
		return
	}
	h.l.Infof(ctx, "webhook.processCreated: %s delivered=%d failed=%d invitee=%t",
		event.Event.ID, out.Delivered, out.Failed, out.InviteeNotified)
}

func (h *Handler) processCanceled(ctx context.Context, event CalendlyEvent) {
	out, err := h.ingestionUC.ProcessCancellation(ctx, ingestion.CancellationInput{
		EventID:     event.Event.ID,
		InviteeName: event.Attendee.Name,
		StartTime:   event.Event.StartTime,
	})
	if err != nil {
		h.l.Errorf(ctx, "webhook.processCanceled: %v", err)
		return
	}
	h.l.Infof(ctx, "webhook.processCanceled: %s delivered=%d failed=%d", event.Event.ID, out.Delivered, out.Failed)
}

// RegisterRoutes mounts the callback endpoint.
func RegisterRoutes(r gin.IRoutes, h *Handler) {
	r.POST("/webhooks/calendly", h.HandleCalendlyWebhook)
}
