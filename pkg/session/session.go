package session

import (
	"context"
	"errors"
	"log"
	"slices"
	"sync"

	"github.com/roffe/admindash/pkg/adminapi"
)

// LoginError carries the message to show on the login form.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

type Session struct {
	client *adminapi.Client
	store  Store

	mu        sync.RWMutex
	user      *adminapi.User
	listeners []func(*adminapi.User)
}

// New binds a session to client. The client should be created with store as
// its credential provider. A 401 from any request other than login expires
// the session.
func New(client *adminapi.Client, store Store) *Session {
	s := &Session{
		client: client,
		store:  store,
	}
	client.SetOnUnauthorized(s.Expire)
	return s
}

// OnChange registers f to be called after every login, logout or expiry.
func (s *Session) OnChange(f func(*adminapi.User)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, f)
	s.mu.Unlock()
}

func (s *Session) User() *adminapi.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Authenticated() bool {
	return s.User() != nil
}

// Restore checks a stored token against the profile endpoint. Without a
// stored token it returns nil and the session stays logged out.
func (s *Session) Restore(ctx context.Context) error {
	if s.store.Token() == "" {
		return nil
	}
	u, err := s.client.Profile(ctx)
	if err != nil {
		log.Println("auth check failed:", err)
		s.store.Clear()
		s.setUser(nil)
		return err
	}
	s.setUser(u)
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return &LoginError{Message: adminapi.Detail(err, "Login failed"), Err: err}
	}
	if resp.AccessToken == "" {
		return &LoginError{Message: "Login failed", Err: errors.New("empty access token")}
	}
	s.store.SetToken(resp.AccessToken)
	s.client.Invalidate()

	u := resp.User
	if u == nil {
		if u, err = s.client.Profile(ctx); err != nil {
			s.store.Clear()
			return &LoginError{Message: "Login failed", Err: err}
		}
	}
	s.setUser(u)
	return nil
}

func (s *Session) Logout() {
	s.store.Clear()
	s.client.Invalidate()
	s.setUser(nil)
}

// Expire drops the credentials after the server rejected them.
func (s *Session) Expire() {
	if s.store.Token() == "" && !s.Authenticated() {
		return
	}
	log.Println("session expired")
	s.Logout()
}

func (s *Session) setUser(u *adminapi.User) {
	s.mu.Lock()
	s.user = u
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, f := range listeners {
		f(u)
	}
}
