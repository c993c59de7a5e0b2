package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-scheduler/internal/webhook"
	pkgCalendly "dinner-scheduler/pkg/calendly"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"dinnerctl"}, args...))
	return out.String(), err
}

func TestSign(t *testing.T) {
	payload := []byte(`{"event":"invitee.created"}`)
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	t.Run("file", func(t *testing.T) {
		out, err := run(t, "", "sign", "--key", "secret", "--file", path)
		require.NoError(t, err)
		assert.Equal(t, webhook.SignCalendlyPayload("secret", payload)+"\n", out)
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, string(payload), "sign", "--key", "secret")
		require.NoError(t, err)
		assert.Equal(t, webhook.SignCalendlyPayload("secret", payload)+"\n", out)
	})

	t.Run("timestamped", func(t *testing.T) {
		out, err := run(t, "", "sign", "--key", "secret", "--file", path, "--timestamped")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "t="), out)
		assert.Contains(t, out, ",v1=")
	})

	t.Run("missing key", func(t *testing.T) {
		t.Setenv("CALENDLY_WEBHOOK_SIGNING_KEY", "")
		_, err := run(t, "", "sign", "--file", path)
		assert.Error(t, err)
	})
}

func TestRecipients(t *testing.T) {
	t.Setenv("MISSIONARY_PHONE_NUMBERS", "+15551112222:Elders:true,+15553334444:Sisters:false,:Orphan:true")

	out, err := run(t, "", "recipients")
	require.NoError(t, err)

	assert.Contains(t, out, "+15551112222")
	assert.Contains(t, out, "Sisters")
	assert.NotContains(t, out, "Orphan")
	assert.Contains(t, out, "1 of 2 opted in")
}

func TestPrintUser(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printUser(&out, &pkgCalendly.User{
		Name:  "Ward Clerk",
		Email: "clerk@example.org",
		URI:   "https://api.calendly.com/users/U1",
	}))
	assert.Contains(t, out.String(), "Ward Clerk")
	assert.Contains(t, out.String(), "https://api.calendly.com/users/U1")
}
