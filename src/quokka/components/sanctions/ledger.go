package sanctions

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyBanned = errors.New("user is already banned")
	ErrAlreadyMuted  = errors.New("user is already muted")
	ErrNotBanned     = errors.New("user is not banned")
)

type Kind string

const (
	KindBan  Kind = "ban"
	KindMute Kind = "mute"
)

// Sanction is a ban or mute record. A zero ExpiresAt means permanent.
type Sanction struct {
	ID        string
	UserID    string
	Kind      Kind
	Reason    string
	IssuedBy  string
	Duration  time.Duration
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (s Sanction) Permanent() bool {
	return s.ExpiresAt.IsZero()
}

type Warning struct {
	ID       string
	UserID   string
	Reason   string
	IssuedBy string
	IssuedAt time.Time
}

// Ledger holds the in-memory sanction state for one guild. Expired entries
// are evicted lazily, on the next query that touches them.
type Ledger struct {
	mu       sync.Mutex
	bans     map[string]Sanction
	mutes    map[string]Sanction
	warnings map[string][]Warning
	now      func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{
		bans:     make(map[string]Sanction),
		mutes:    make(map[string]Sanction),
		warnings: make(map[string][]Warning),
		now:      time.Now,
	}
}

// Ban records a ban for userID. A duration of zero means permanent. Returns
// ErrAlreadyBanned if an active ban exists; a naturally expired ban is
// evicted first and does not block re-issuance.
func (l *Ledger) Ban(userID, reason, issuedBy string, duration time.Duration) (Sanction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.activeLocked(l.bans, userID) {
		return Sanction{}, ErrAlreadyBanned
	}
	s := l.newSanction(userID, KindBan, reason, issuedBy, duration)
	l.bans[userID] = s
	return s, nil
}

// Mute records a mute for userID with the same policy as Ban. The message
// sweep that accompanies a mute is a separate best-effort step (see Sweeper)
// and runs only after the record is committed here.
func (l *Ledger) Mute(userID, reason, issuedBy string, duration time.Duration) (Sanction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.activeLocked(l.mutes, userID) {
		return Sanction{}, ErrAlreadyMuted
	}
	s := l.newSanction(userID, KindMute, reason, issuedBy, duration)
	l.mutes[userID] = s
	return s, nil
}

// Unban removes the ban for userID and returns the removed record for audit
// messaging.
func (l *Ledger) Unban(userID string) (Sanction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.bans[userID]
	if !ok {
		return Sanction{}, ErrNotBanned
	}
	delete(l.bans, userID)
	return s, nil
}

func (l *Ledger) IsBanned(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activeLocked(l.bans, userID)
}

func (l *Ledger) IsMuted(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activeLocked(l.mutes, userID)
}

// ActiveBan returns the active ban for userID, if any.
func (l *Ledger) ActiveBan(userID string) (Sanction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.activeLocked(l.bans, userID) {
		return Sanction{}, false
	}
	return l.bans[userID], true
}

// ActiveMute returns the active mute for userID, if any.
func (l *Ledger) ActiveMute(userID string) (Sanction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.activeLocked(l.mutes, userID) {
		return Sanction{}, false
	}
	return l.mutes[userID], true
}

// Warn appends a warning for userID and returns the new total. Warnings
// never expire and are never removed.
func (l *Ledger) Warn(userID, reason, issuedBy string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warnings[userID] = append(l.warnings[userID], Warning{
		ID:       uuid.NewString(),
		UserID:   userID,
		Reason:   reason,
		IssuedBy: issuedBy,
		IssuedAt: l.now(),
	})
	return len(l.warnings[userID])
}

// Warnings returns the warnings for userID in insertion order.
func (l *Ledger) Warnings(userID string) []Warning {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Warning, len(l.warnings[userID]))
	copy(out, l.warnings[userID])
	return out
}

func (l *Ledger) newSanction(userID string, kind Kind, reason, issuedBy string, duration time.Duration) Sanction {
	s := Sanction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Kind:     kind,
		Reason:   reason,
		IssuedBy: issuedBy,
		Duration: duration,
		IssuedAt: l.now(),
	}
	if duration > 0 {
		s.ExpiresAt = s.IssuedAt.Add(duration)
	}
	return s
}

// activeLocked reports whether entries holds an active sanction for userID,
// evicting it first if it has expired. Callers must hold l.mu.
func (l *Ledger) activeLocked(entries map[string]Sanction, userID string) bool {
	s, ok := entries[userID]
	if !ok {
		return false
	}
	if s.Permanent() {
		return true
	}
	if l.now().After(s.ExpiresAt) {
		delete(entries, userID)
		return false
	}
	return true
}
