package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := Open(OpenOptions{Path: filepath.Join(t.TempDir(), "data", "sessions.db"), TTL: ttl})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(OpenOptions{})
	assert.Error(t, err)
}

func TestCreateGetDelete(t *testing.T) {
	s := openTestStore(t, time.Hour)

	sess, err := s.Create("admin@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, time.Hour, sess.ExpiresAt.Sub(sess.CreatedAt))

	got, err := s.Get(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got.Email)

	require.NoError(t, s.Delete(sess.Token))
	_, err = s.Get(sess.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Unknown and empty tokens
	require.NoError(t, s.Delete("nope"))
	_, err = s.Get("")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExpiry(t *testing.T) {
	s := openTestStore(t, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	sess, err := s.Create("admin@example.com")
	require.NoError(t, err)

	now = now.Add(59 * time.Second)
	_, err = s.Get(sess.Token)
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = s.Get(sess.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Expired sessions are removed on read
	_, err = s.Get(sess.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPurge(t *testing.T) {
	s := openTestStore(t, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	old, err := s.Create("a@example.com")
	require.NoError(t, err)
	now = now.Add(30 * time.Second)
	fresh, err := s.Create("b@example.com")
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	n, err := s.Purge()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.Get(old.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(fresh.Token)
	assert.NoError(t, err)
}

func TestDefaultTTL(t *testing.T) {
	s := openTestStore(t, 0)
	assert.Equal(t, DefaultTTL, s.TTL())
}
