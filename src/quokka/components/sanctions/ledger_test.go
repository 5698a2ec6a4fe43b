package sanctions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanUnbanCycle(t *testing.T) {
	l := NewLedger()

	s, err := l.Ban("u1", "spam", "mod", 0)
	require.NoError(t, err)
	assert.True(t, s.Permanent())
	assert.True(t, l.IsBanned("u1"))

	_, err = l.Ban("u1", "again", "mod", 0)
	assert.ErrorIs(t, err, ErrAlreadyBanned)

	removed, err := l.Unban("u1")
	require.NoError(t, err)
	assert.Equal(t, "spam", removed.Reason)
	assert.False(t, l.IsBanned("u1"))

	// A fresh ban succeeds after unban.
	_, err = l.Ban("u1", "back", "mod", time.Hour)
	require.NoError(t, err)
	assert.True(t, l.IsBanned("u1"))
}

func TestUnbanUnknownUser(t *testing.T) {
	l := NewLedger()
	_, err := l.Unban("nobody")
	assert.ErrorIs(t, err, ErrNotBanned)
}

func TestLazyExpiryEvictsOnQuery(t *testing.T) {
	l := NewLedger()
	current := time.Now()
	l.now = func() time.Time { return current }

	_, err := l.Ban("u1", "spam", "mod", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, l.IsBanned("u1"))

	current = current.Add(11 * time.Minute)
	assert.False(t, l.IsBanned("u1"))

	// The expired entry was evicted, so re-issuance is not blocked.
	_, err = l.Ban("u1", "fresh", "mod", time.Minute)
	require.NoError(t, err)
}

func TestExpiredBanDoesNotBlockReissuance(t *testing.T) {
	l := NewLedger()
	current := time.Now()
	l.now = func() time.Time { return current }

	_, err := l.Ban("u1", "spam", "mod", time.Minute)
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)

	// Ban itself performs the lazy eviction, without an IsBanned call first.
	_, err = l.Ban("u1", "again", "mod", time.Minute)
	require.NoError(t, err)
}

func TestPermanentBanNeverExpires(t *testing.T) {
	l := NewLedger()
	current := time.Now()
	l.now = func() time.Time { return current }

	_, err := l.Ban("u1", "spam", "mod", 0)
	require.NoError(t, err)

	current = current.Add(1000 * time.Hour)
	assert.True(t, l.IsBanned("u1"))
}

func TestMuteDuplicateRejected(t *testing.T) {
	l := NewLedger()

	_, err := l.Mute("u1", "noise", "mod", time.Hour)
	require.NoError(t, err)
	assert.True(t, l.IsMuted("u1"))

	_, err = l.Mute("u1", "noise", "mod", time.Hour)
	assert.ErrorIs(t, err, ErrAlreadyMuted)

	// Ban and mute ledgers are independent.
	assert.False(t, l.IsBanned("u1"))
	_, err = l.Ban("u1", "spam", "mod", time.Hour)
	require.NoError(t, err)
}

func TestWarnAccumulates(t *testing.T) {
	l := NewLedger()

	assert.Equal(t, 1, l.Warn("u1", "first", "mod"))
	assert.Equal(t, 2, l.Warn("u1", "second", "mod"))
	assert.Equal(t, 3, l.Warn("u1", "third", "mod"))

	ws := l.Warnings("u1")
	require.Len(t, ws, 3)
	assert.Equal(t, "first", ws[0].Reason)
	assert.Equal(t, "second", ws[1].Reason)
	assert.Equal(t, "third", ws[2].Reason)

	assert.Empty(t, l.Warnings("u2"))
}

func TestActiveMuteReturnsRecord(t *testing.T) {
	l := NewLedger()

	_, ok := l.ActiveMute("u1")
	assert.False(t, ok)

	issued, err := l.Mute("u1", "noise", "mod", time.Hour)
	require.NoError(t, err)

	got, ok := l.ActiveMute("u1")
	require.True(t, ok)
	assert.Equal(t, issued.ID, got.ID)
	assert.Equal(t, KindMute, got.Kind)
}
