package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dinner-scheduler/internal/notification"
	"dinner-scheduler/pkg/response"
	"dinner-scheduler/pkg/twilio"
)

// OptIn godoc
// @Summary     Opt in to SMS notifications
// @Description Subscribes a US phone number, logs consent, and sends a confirmation text.
// @Tags        SMS
// @Accept      json
// @Produce     json
// @Param       body body optInReq true "Phone number (+1XXXXXXXXXX) and missionary type"
// @Success     200 {object} optInResp
// @Failure     400 {object} response.Resp "Invalid phone number format / Invalid missionary type"
// @Failure     429 {object} response.Resp "Too many requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/sms/opt-in [POST]
func (h *handler) OptIn(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processOptInReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.OptIn(ctx, req.toInput())
	if err != nil {
		if clientErr, ok := h.mapError(err); ok {
			response.Error(c, clientErr, nil)
			return
		}
		h.l.Errorf(ctx, "optin.http.OptIn: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newOptInResp(output))
}

// InboundSMS godoc
// @Summary     Twilio inbound SMS webhook
// @Description Handles START and STOP keywords and replies with TwiML.
// @Tags        SMS
// @Accept      x-www-form-urlencoded
// @Produce     xml
// @Param       From formData string true "Sender phone number"
// @Param       Body formData string true "Message text"
// @Success     200 {string} string "TwiML response"
// @Failure     401 {string} string "Invalid signature"
// @Failure     500 {string} string "Internal Server Error"
// @Router      /api/sms [POST]
func (h *handler) InboundSMS(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processInboundReq(c)
	if err != nil {
		if errors.Is(err, errInvalidTwilioSignature) {
			h.l.Warnf(ctx, "optin.http.InboundSMS: %v", err)
			c.String(http.StatusUnauthorized, "Unauthorized")
			return
		}
		h.l.Errorf(ctx, "optin.http.InboundSMS: bind: %v", err)
		h.twiml(c, notification.SMSHelpText)
		return
	}

	output, err := h.uc.HandleKeyword(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "optin.http.InboundSMS: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.twiml(c, output.Reply)
}

func (h *handler) twiml(c *gin.Context, message string) {
	body, err := twilio.TwiML(message)
	if err != nil {
		h.l.Errorf(c.Request.Context(), "optin.http.twiml: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(http.StatusOK, "text/xml; charset=utf-8", body)
}
