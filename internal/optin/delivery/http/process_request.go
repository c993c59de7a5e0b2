package http

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"dinner-scheduler/internal/optin"
	"dinner-scheduler/pkg/twilio"
)

var errInvalidTwilioSignature = errors.New("invalid twilio signature")

func (h *handler) processOptInReq(c *gin.Context) (optInReq, error) {
	var req optInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "PhoneNumber" {
					return req, optin.ErrInvalidPhone
				}
			}
			return req, optin.ErrInvalidType
		}
		return req, err
	}
	req.IPAddress = clientIP(c)
	return req, nil
}

func (h *handler) processInboundReq(c *gin.Context) (inboundReq, error) {
	var req inboundReq
	if err := c.ShouldBind(&req); err != nil {
		return req, err
	}

	if h.cfg.TwilioAuthToken != "" {
		if err := c.Request.ParseForm(); err != nil {
			return req, err
		}
		if !twilio.ValidateSignature(h.cfg.TwilioAuthToken, h.requestURL(c), c.Request.PostForm, c.GetHeader(twilio.HeaderSignature)) {
			return req, errInvalidTwilioSignature
		}
	}
	return req, nil
}

// requestURL rebuilds the URL Twilio signed. Behind a proxy the configured
// public URL is the only reliable source.
func (h *handler) requestURL(c *gin.Context) string {
	if h.cfg.PublicURL != "" {
		return strings.TrimRight(h.cfg.PublicURL, "/") + c.Request.URL.RequestURI()
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: c.Request.URL.RawQuery}
	return u.String()
}

// clientIP prefers the proxy headers, the way the consent log always recorded it.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return xri
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
