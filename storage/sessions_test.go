package storage

import (
	"strings"
	"testing"
	"time"

	"traychat/model"
)

func newTestStorage(t *testing.T) *SessionStorage {
	t.Helper()
	s, err := NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("creating session storage: %v", err)
	}
	return s
}

func TestSessionSaveAndLoad(t *testing.T) {
	s := newTestStorage(t)

	session := &Session{
		Name:     "test chat",
		Provider: string(model.ProviderAnthropic),
		Model:    "claude-sonnet-4-5",
		Messages: []Message{
			{Role: model.RoleUser, Content: "hi", Timestamp: time.Now()},
			{Role: model.RoleAssistant, Content: "hello", Timestamp: time.Now()},
		},
	}

	if err := s.Save(session); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if session.ID == "" {
		t.Fatal("save must assign an ID")
	}

	loaded, err := s.Load(session.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Name != "test chat" || loaded.Provider != "anthropic" || loaded.Model != "claude-sonnet-4-5" {
		t.Errorf("loaded session mismatch: %+v", loaded)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(loaded.Messages))
	}
	if loaded.Messages[0].Content != "hi" || loaded.Messages[1].Role != model.RoleAssistant {
		t.Errorf("message content mismatch: %+v", loaded.Messages)
	}
}

func TestSessionList(t *testing.T) {
	s := newTestStorage(t)

	for _, name := range []string{"first", "second"} {
		session := &Session{Name: name, Provider: "openai", Model: "gpt-4o"}
		if err := s.Save(session); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		time.Sleep(10 * time.Millisecond) // distinct UpdatedAt
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	// Newest first
	if list[0].Name != "second" {
		t.Errorf("expected newest session first, got %q", list[0].Name)
	}
}

func TestSessionDelete(t *testing.T) {
	s := newTestStorage(t)

	session := &Session{Name: "doomed", Provider: "openai", Model: "gpt-4o"}
	if err := s.Save(session); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Delete(session.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.Load(session.ID); err == nil {
		t.Error("expected error loading a deleted session")
	}
}

func TestCurrentSessionID(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SaveCurrentSessionID("abc-123"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	id, err := s.LoadCurrentSessionID()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if id != "abc-123" {
		t.Errorf("expected abc-123, got %q", id)
	}
}

func TestRenameSession(t *testing.T) {
	s := newTestStorage(t)

	session := &Session{Name: "old", Provider: "gemini", Model: "gemini-2.5-pro"}
	if err := s.Save(session); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.RenameSession(session.ID, "new"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	loaded, err := s.Load(session.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Name != "new" {
		t.Errorf("expected renamed session, got %q", loaded.Name)
	}
}

func TestGenerateSessionName(t *testing.T) {
	t.Run("short message", func(t *testing.T) {
		if got := GenerateSessionName("hello"); got != "hello" {
			t.Errorf("expected hello, got %q", got)
		}
	})

	t.Run("long message truncated", func(t *testing.T) {
		got := GenerateSessionName(strings.Repeat("a", 50))
		if !strings.HasSuffix(got, "...") {
			t.Errorf("expected ellipsis suffix, got %q", got)
		}
		if len(got) != 33 {
			t.Errorf("expected 33 chars, got %d", len(got))
		}
	})

	t.Run("newlines flattened", func(t *testing.T) {
		if got := GenerateSessionName("line one\nline two"); strings.Contains(got, "\n") {
			t.Errorf("expected newlines removed, got %q", got)
		}
	})

	t.Run("empty falls back to timestamp", func(t *testing.T) {
		if got := GenerateSessionName(""); !strings.HasPrefix(got, "Session ") {
			t.Errorf("expected timestamp name, got %q", got)
		}
	})
}
