package middleware

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dinner-scheduler/pkg/log"
	"dinner-scheduler/pkg/ratelimit"
	"dinner-scheduler/pkg/response"
)

const (
	HeaderRequestID    = "X-Request-ID"
	HeaderSessionToken = "X-Session-Token"

	// ContextKeySessionToken holds the validated session token in the gin context.
	ContextKeySessionToken = "session_token"

	maxSessionBodyBytes = 64 << 10
)

// RequestID tags every request with an id, reusing the caller's X-Request-ID
// when present, and stores it in the request context for logging.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// AccessLog writes one structured line per request.
func (m Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.l.Infof(c.Request.Context(), "http: %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// CronAuth requires "Authorization: Bearer <cron secret>".
func (m Middleware) CronAuth() gin.HandlerFunc {
	return m.bearer("cron secret", m.cronSecret)
}

// APIKeyAuth requires "Authorization: Bearer <api secret key>".
func (m Middleware) APIKeyAuth() gin.HandlerFunc {
	return m.bearer("api secret key", m.apiSecretKey)
}

func (m Middleware) bearer(name, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			m.l.Errorf(c.Request.Context(), "middleware.bearer: %s is not configured", name)
			response.InternalError(c, errors.New(name+" not configured"))
			c.Abort()
			return
		}
		if !secretEqual(bearerToken(c), secret) {
			response.Unauthorized(c, "")
			return
		}
		c.Next()
	}
}

// SessionAuth requires a valid missionary session token. The token is read
// from the Authorization bearer, the X-Session-Token header, the session_token
// query parameter, or a JSON body field "sessionToken".
func (m Middleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if m.sessions == nil || !m.sessions.Validate(token) {
			response.Unauthorized(c, "Session expired. Please log in again.")
			return
		}
		c.Set(ContextKeySessionToken, token)
		c.Next()
	}
}

// RateLimit throttles a route per client IP. Every call gets its own buckets,
// so password attempts and opt-in submissions are limited independently.
func (m Middleware) RateLimit() gin.HandlerFunc {
	limiter := ratelimit.New(m.ratePerMin)
	return func(c *gin.Context) {
		if err := limiter.Allow(c.ClientIP()); err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.RateLimit: %v", err)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if len(auth) > len("Bearer ") && strings.EqualFold(auth[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}
	return ""
}

func sessionToken(c *gin.Context) string {
	if tok := bearerToken(c); tok != "" {
		return tok
	}
	if tok := c.GetHeader(HeaderSessionToken); tok != "" {
		return tok
	}
	if tok := c.Query("session_token"); tok != "" {
		return tok
	}
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSessionBodyBytes))
	if err != nil {
		return ""
	}
	// Put the body back for the handler.
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var body struct {
		SessionToken string `json:"sessionToken"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.SessionToken
}

// SessionTokenFrom returns the token validated by SessionAuth.
func SessionTokenFrom(c *gin.Context) string {
	return c.GetString(ContextKeySessionToken)
}

// ExtractSessionToken reads a token the same way SessionAuth does, without validating it.
func ExtractSessionToken(c *gin.Context) string {
	return sessionToken(c)
}

func secretEqual(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
