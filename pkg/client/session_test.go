package client

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSession_LoadMissingFile(t *testing.T) {
	s := NewSession(filepath.Join(t.TempDir(), "session.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if s.LoggedIn() {
		t.Error("fresh session must be logged out")
	}
}

func TestSession_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s := NewSession(path)
	s.Token = "tok"
	s.User = User{Email: "admin@123", IsAdmin: true}
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	// load-at-start
	s2 := NewSession(path)
	if err := s2.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s2.LoggedIn() || s2.Token != "tok" || s2.User.Email != "admin@123" || !s2.User.IsAdmin {
		t.Errorf("roundtrip mismatch: %+v", s2)
	}

	// clear-on-logout
	if err := s2.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s2.LoggedIn() {
		t.Error("cleared session must be logged out")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clear must remove the session file")
	}
	// 再清一次不报错
	if err := s2.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}
