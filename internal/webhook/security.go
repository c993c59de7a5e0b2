package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dinner-scheduler/pkg/ratelimit"
)

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *ratelimit.Limiter
	now         func() time.Time
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	return &SecurityValidator{
		config:      config,
		rateLimiter: ratelimit.New(config.RateLimitPerMin),
		now:         time.Now,
	}
}

// ValidateCalendlySignature verifies the Calendly-Webhook-Signature header.
// Two forms are accepted: a bare hex HMAC-SHA256 of the body, and Calendly's
// "t=<unix>,v1=<hex>" form where the signed data is "<t>.<body>".
func (v *SecurityValidator) ValidateCalendlySignature(payload []byte, header string) error {
	if v.config.SigningKey == "" {
		return ErrSigningKeyMissing
	}

	header = strings.TrimSpace(header)
	if header == "" {
		return fmt.Errorf("%w: missing signature", ErrSignatureInvalid)
	}

	signed := payload
	sigHex := header
	if strings.Contains(header, "v1=") {
		ts, sig, err := parseTimestampedSignature(header)
		if err != nil {
			return err
		}
		if err := v.checkTolerance(ts); err != nil {
			return err
		}
		signed = append([]byte(strconv.FormatInt(ts, 10)+"."), payload...)
		sigHex = sig
	}

	expectedSig, err := hex.DecodeString(sigHex)
	if err != nil {
		return fmt.Errorf("%w: invalid hex encoding", ErrSignatureInvalid)
	}

	mac := hmac.New(sha256.New, []byte(v.config.SigningKey))
	mac.Write(signed)
	if !hmac.Equal(expectedSig, mac.Sum(nil)) {
		return fmt.Errorf("%w: verification failed", ErrSignatureInvalid)
	}
	return nil
}

func (v *SecurityValidator) checkTolerance(ts int64) error {
	if v.config.Tolerance <= 0 {
		return nil
	}
	age := v.now().Sub(time.Unix(ts, 0))
	if age < 0 {
		age = -age
	}
	if age > v.config.Tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", ErrSignatureInvalid)
	}
	return nil
}

func parseTimestampedSignature(header string) (int64, string, error) {
	var ts int64
	var sig string
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, "", fmt.Errorf("%w: invalid timestamp", ErrSignatureInvalid)
			}
			ts = n
		case "v1":
			sig = value
		}
	}
	if ts == 0 || sig == "" {
		return 0, "", fmt.Errorf("%w: invalid signature format", ErrSignatureInvalid)
	}
	return ts, sig, nil
}

// ValidateIPAddress checks if request IP is whitelisted
func (v *SecurityValidator) ValidateIPAddress(r *http.Request) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil
	}

	ip := v.clientIP(r)
	if matchIP(ip, v.config.AllowedIPs) {
		return nil
	}
	return fmt.Errorf("IP %s not whitelisted", ip)
}

// CheckRateLimit enforces rate limiting
func (v *SecurityValidator) CheckRateLimit(source string) error {
	return v.rateLimiter.Allow(source)
}

// clientIP returns the caller's address. Forwarding headers are only read
// when the direct peer is a trusted proxy; X-Forwarded-For is walked from the
// right and the first hop that is not a trusted proxy wins.
func (v *SecurityValidator) clientIP(r *http.Request) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !matchIP(remote, v.config.TrustedProxies) {
		return remote
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if i == 0 || !matchIP(hop, v.config.TrustedProxies) {
				return hop
			}
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return remote
}

// matchIP reports whether ip equals an entry or falls inside a CIDR entry.
func matchIP(ip string, entries []string) bool {
	parsed := net.ParseIP(ip)
	for _, entry := range entries {
		if ip == entry {
			return true
		}
		if !strings.Contains(entry, "/") || parsed == nil {
			continue
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			continue
		}
		if ipNet.Contains(parsed) {
			return true
		}
	}
	return false
}

// SignCalendlyPayload returns the bare hex signature of payload.
func SignCalendlyPayload(key string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignCalendlyPayloadAt returns a timestamped "t=...,v1=..." header value.
func SignCalendlyPayloadAt(key string, payload []byte, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	sig := SignCalendlyPayload(key, append([]byte(ts+"."), payload...))
	return "t=" + ts + ",v1=" + sig
}
