// ABOUTME: Process-wide app state with a signed-in user slice and an auth prompt slice.
// ABOUTME: Components subscribe to a slice and are called after every change to it.
package appstate

import (
	"sync"

	"github.com/harperreed/fitforge/internal/models"
)

// Store holds shared app state. The zero value is ready to use.
type Store struct {
	mu       sync.Mutex
	user     *models.UserProfile
	authOpen bool
	nextID   int
	userSubs map[int]func(*models.UserProfile)
	authSubs map[int]func(bool)
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// User returns the signed-in user, or nil.
func (s *Store) User() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser replaces the user slice and notifies user subscribers.
// Pass nil on sign-out.
func (s *Store) SetUser(u *models.UserProfile) {
	s.mu.Lock()
	s.user = u
	subs := make([]func(*models.UserProfile), 0, len(s.userSubs))
	for _, fn := range s.userSubs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

// AuthPromptOpen reports whether the sign-in prompt should be shown.
func (s *Store) AuthPromptOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authOpen
}

// OpenAuthPrompt asks the UI to show the sign-in prompt.
func (s *Store) OpenAuthPrompt() {
	s.setAuthOpen(true)
}

// CloseAuthPrompt dismisses the sign-in prompt.
func (s *Store) CloseAuthPrompt() {
	s.setAuthOpen(false)
}

func (s *Store) setAuthOpen(open bool) {
	s.mu.Lock()
	if s.authOpen == open {
		s.mu.Unlock()
		return
	}
	s.authOpen = open
	subs := make([]func(bool), 0, len(s.authSubs))
	for _, fn := range s.authSubs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(open)
	}
}

// SubscribeUser registers fn for user changes. Call the returned func to stop.
func (s *Store) SubscribeUser(fn func(*models.UserProfile)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userSubs == nil {
		s.userSubs = make(map[int]func(*models.UserProfile))
	}
	id := s.nextID
	s.nextID++
	s.userSubs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.userSubs, id)
	}
}

// SubscribeAuthPrompt registers fn for auth prompt changes.
func (s *Store) SubscribeAuthPrompt(fn func(bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authSubs == nil {
		s.authSubs = make(map[int]func(bool))
	}
	id := s.nextID
	s.nextID++
	s.authSubs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.authSubs, id)
	}
}
