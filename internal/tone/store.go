// Package tone keeps the user's response-tone preference in step with the backend.
package tone

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/iksnae/studymind/internal"
)

// ErrUnknownTone is returned for a tone outside the supported set
var ErrUnknownTone = errors.New("unknown tone")

// Backend reads and writes the tone preference
type Backend interface {
	GetTone(ctx context.Context, userID string) (internal.Tone, error)
	SetTone(ctx context.Context, userID string, tone internal.Tone) error
}

// Announcer receives the informational message shown after a change
type Announcer interface {
	Announce(content string)
}

// Store holds the current tone. It starts at internal.DefaultTone.
type Store struct {
	backend   Backend
	userID    string
	announcer Announcer

	mu      sync.Mutex
	current internal.Tone
}

// NewStore creates a store; announcer may be nil
func NewStore(backend Backend, userID string, announcer Announcer) *Store {
	return &Store{
		backend:   backend,
		userID:    userID,
		announcer: announcer,
		current:   internal.DefaultTone,
	}
}

// SetAnnouncer replaces the announcer, for example after a new conversation starts
func (s *Store) SetAnnouncer(a Announcer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcer = a
}

// Current returns the active tone
func (s *Store) Current() internal.Tone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Load fetches the user's tone. On failure the current value is kept and
// the failure is only logged.
func (s *Store) Load(ctx context.Context) internal.Tone {
	t, err := s.backend.GetTone(ctx, s.userID)
	if err != nil {
		internal.LogWarn("Failed to load tone: %v", err)
		return s.Current()
	}
	if !t.Valid() {
		internal.LogWarn("Backend reported unknown tone %q, keeping %s", t, s.Current())
		return s.Current()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = t
	internal.LogDebug("Loaded tone %s for %s", t, s.userID)
	return t
}

// Change switches to t. It reports false without a network call when t is
// already active. The local value changes and the announcement is made only
// after the backend confirms; a failure is logged and returned.
func (s *Store) Change(ctx context.Context, t internal.Tone) (bool, error) {
	t = internal.Tone(strings.ToLower(strings.TrimSpace(string(t))))
	if !t.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownTone, t)
	}
	if t == s.Current() {
		return false, nil
	}

	if err := s.backend.SetTone(ctx, s.userID, t); err != nil {
		internal.LogWarn("Failed to set tone: %v", err)
		return false, err
	}

	s.mu.Lock()
	s.current = t
	announcer := s.announcer
	s.mu.Unlock()

	if announcer != nil {
		announcer.Announce(Announcement(t))
	}
	return true, nil
}

// Announcement is the message appended after a successful change
func Announcement(t internal.Tone) string {
	return fmt.Sprintf("Tone updated to %q. I'll use that style going forward.", string(t))
}
