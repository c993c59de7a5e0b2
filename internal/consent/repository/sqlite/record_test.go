package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-scheduler/internal/consent"
)

func newTestRepo(t *testing.T) *implRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "consent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo.(*implRepository)
}

func TestAppendAndHistory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := repo.Append(ctx, consent.AppendInput{
		PhoneNumber:    "+15551230001",
		MissionaryType: "Elders",
		IPAddress:      "203.0.113.7",
		Method:         consent.MethodWebForm,
		Status:         consent.StatusOptedIn,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, consent.Text, first.ConsentText)

	_, err = repo.Append(ctx, consent.AppendInput{
		PhoneNumber: "+15551230001",
		Method:      consent.MethodSMS,
		Status:      consent.StatusOptedOut,
	})
	require.NoError(t, err)

	_, err = repo.Append(ctx, consent.AppendInput{PhoneNumber: "+15551230002"})
	require.NoError(t, err)

	history, err := repo.History(ctx, "+15551230001")
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, consent.StatusOptedOut, history[0].Status, "newest first")
	assert.Equal(t, consent.MethodSMS, history[0].Method)
	assert.Equal(t, consent.UnknownType, history[0].MissionaryType)
	assert.Equal(t, "unknown", history[0].IPAddress)

	assert.Equal(t, first.ID, history[1].ID)
	assert.Equal(t, "Elders", history[1].MissionaryType)
	assert.True(t, history[1].Timestamp.Equal(base.Add(time.Minute)))
}

func TestAppend_RequiresPhone(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Append(context.Background(), consent.AppendInput{})
	assert.ErrorIs(t, err, consent.ErrInvalidRecord)
}

func TestHistory_Empty(t *testing.T) {
	repo := newTestRepo(t)
	history, err := repo.History(context.Background(), "+15550000000")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consent.db")

	repo, err := New(path)
	require.NoError(t, err)
	_, err = repo.Append(context.Background(), consent.AppendInput{PhoneNumber: "+15551230001"})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = New(path)
	require.NoError(t, err)
	defer repo.Close()

	history, err := repo.History(context.Background(), "+15551230001")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
