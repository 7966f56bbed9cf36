package db

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	database, err := OpenMemory()
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewSessionStore(database)
}

func TestOpen_CreatesDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "nelfund.db")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(`INSERT INTO chat_sessions (id) VALUES ('s1')`); err != nil {
		t.Errorf("schema not applied: %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("session id must be set")
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("Get returned %q, want %q", got.ID, sess.ID)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestDelete_UnknownSession(t *testing.T) {
	store := newTestStore(t)
	if err := store.Delete(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAppendMessageAndHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	exchanges := []struct {
		query   string
		answer  string
		sources []string
	}{
		{"hello", "Hello! How can I help?", nil},
		{"who is eligible?", "Students in public institutions.", []string{"act.pdf", "faq.pdf"}},
	}
	for _, e := range exchanges {
		if _, err := store.AppendMessage(ctx, sess.ID, e.query, e.answer, e.sources); err != nil {
			t.Fatalf("AppendMessage(%q) failed: %v", e.query, err)
		}
	}

	history, err := store.History(ctx, sess.ID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Query != "hello" || history[1].Query != "who is eligible?" {
		t.Errorf("history out of order: %q then %q", history[0].Query, history[1].Query)
	}
	if !reflect.DeepEqual(history[0].Sources, []string{}) {
		t.Errorf("nil sources must round-trip as empty, got %v", history[0].Sources)
	}
	if !reflect.DeepEqual(history[1].Sources, []string{"act.pdf", "faq.pdf"}) {
		t.Errorf("unexpected sources: %v", history[1].Sources)
	}
}

func TestAppendMessage_UnknownSession(t *testing.T) {
	store := newTestStore(t)
	_, err := store.AppendMessage(context.Background(), "missing", "q", "a", nil)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestHistory_UnknownSession(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.History(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDelete_CascadesToMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.AppendMessage(ctx, sess.ID, "q", "a", nil); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM chat_messages`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected messages to cascade on delete, found %d", count)
	}
}
