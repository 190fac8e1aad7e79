package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Session holds the client-local login state (token + user profile).
// It is an explicit object with load-at-start / clear-on-logout
// lifecycle, not ambient global state.
type Session struct {
	path string

	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func NewSession(path string) *Session { return &Session{path: path} }

// Load reads a previously saved session. A missing file leaves the
// session empty and is not an error.
func (s *Session) Load() error {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, s)
}

func (s *Session) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Clear wipes the in-memory state and removes the file (logout).
func (s *Session) Clear() error {
	s.Token = ""
	s.User = User{}
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Session) LoggedIn() bool { return s.Token != "" }
