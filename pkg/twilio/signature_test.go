package twilio

import (
	"net/url"
	"testing"
)

func TestValidateSignature(t *testing.T) {
	const token = "auth-token"
	const endpoint = "https://dinner.example.com/api/sms"

	params := url.Values{}
	params.Set("From", "+15551230001")
	params.Set("Body", "STOP")
	params.Set("MessageSid", "SM123")

	sig := Signature(token, endpoint, params)

	tests := []struct {
		name   string
		token  string
		url    string
		params url.Values
		sig    string
		want   bool
	}{
		{"valid", token, endpoint, params, sig, true},
		{"wrong token", "other", endpoint, params, sig, false},
		{"wrong url", token, endpoint + "?x=1", params, sig, false},
		{"tampered body", token, endpoint, url.Values{"From": {"+15551230001"}, "Body": {"START"}, "MessageSid": {"SM123"}}, sig, false},
		{"empty signature", token, endpoint, params, "", false},
		{"empty token", "", endpoint, params, sig, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateSignature(tt.token, tt.url, tt.params, tt.sig); got != tt.want {
				t.Errorf("ValidateSignature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignature_KeyOrderIndependent(t *testing.T) {
	a := url.Values{}
	a.Set("Body", "hi")
	a.Set("From", "+1")

	b := url.Values{}
	b.Set("From", "+1")
	b.Set("Body", "hi")

	if Signature("t", "https://x", a) != Signature("t", "https://x", b) {
		t.Error("signature should not depend on insertion order")
	}
}
