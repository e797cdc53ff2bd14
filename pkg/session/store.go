package session

import (
	"sync"

	"fyne.io/fyne/v2"
)

const prefsToken = "admin_token"

// Store keeps the bearer token between runs. It satisfies
// adminapi.CredentialProvider.
type Store interface {
	Token() string
	SetToken(token string)
	Clear()
}

type PreferencesStore struct {
	prefs fyne.Preferences
}

func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

func (p *PreferencesStore) Token() string {
	return p.prefs.String(prefsToken)
}

func (p *PreferencesStore) SetToken(token string) {
	p.prefs.SetString(prefsToken, token)
}

func (p *PreferencesStore) Clear() {
	p.prefs.RemoveValue(prefsToken)
}

// MemoryStore forgets the token when the process exits.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func (m *MemoryStore) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *MemoryStore) SetToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *MemoryStore) Clear() {
	m.SetToken("")
}
