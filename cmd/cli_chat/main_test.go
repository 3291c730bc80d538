package main

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"roomcraft/internal/agent"
	"roomcraft/internal/domain"
	"roomcraft/internal/repository"
	"roomcraft/internal/service"
)

func newTestConversation(t *testing.T) (*service.SessionStore, *service.ConversationController, *agent.MockClient) {
	t.Helper()
	logger := zap.NewNop()
	store := service.NewSessionStore(repository.NewMemorySnapshotRepository(), logger)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	mock := &agent.MockClient{Envelope: agent.SuccessEnvelope(domain.Result{Message: "Here are some ideas"})}
	conv := service.NewConversationController(store, mock, "agent-1", time.Second, logger)
	return store, conv, mock
}

func TestPickSession(t *testing.T) {
	store, conv, _ := newTestConversation(t)
	first, _ := conv.NewSession(context.Background())
	second, _ := conv.NewSession(context.Background())

	got, err := pickSession(store, "1")
	if err != nil || got.ID != second.ID {
		t.Fatalf("expected newest session first, got %v (%v)", got.ID, err)
	}
	got, err = pickSession(store, "2")
	if err != nil || got.ID != first.ID {
		t.Fatalf("expected first session at 2, got %v (%v)", got.ID, err)
	}
	for _, arg := range []string{"", "0", "3", "abc"} {
		if _, err := pickSession(store, arg); err == nil {
			t.Fatalf("expected error for %q", arg)
		}
	}
}

func TestRunCommand(t *testing.T) {
	ctx := context.Background()
	reader := bufio.NewReader(strings.NewReader(""))

	t.Run("new, rename y delete", func(t *testing.T) {
		store, conv, _ := newTestConversation(t)
		if err := runCommand(ctx, reader, store, conv, "/new"); err != nil {
			t.Fatalf("new: %v", err)
		}
		id := conv.ActiveSessionID()
		if id == "" {
			t.Fatalf("expected active session after /new")
		}
		if err := runCommand(ctx, reader, store, conv, "/rename  Attic loft "); err != nil {
			t.Fatalf("rename: %v", err)
		}
		if sess, _ := store.Get(id); sess.Title != "Attic loft" {
			t.Fatalf("expected renamed title, got %q", sess.Title)
		}
		if err := runCommand(ctx, reader, store, conv, "/rename"); err == nil {
			t.Fatalf("expected error for blank title")
		}
		if err := runCommand(ctx, reader, store, conv, "/delete 1"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if len(store.List()) != 0 || conv.ActiveSessionID() != "" {
			t.Fatalf("expected session removed and selection cleared")
		}
	})

	t.Run("quick envia el atajo", func(t *testing.T) {
		store, conv, mock := newTestConversation(t)
		if err := runCommand(ctx, reader, store, conv, "/quick 2"); err != nil {
			t.Fatalf("quick: %v", err)
		}
		if mock.Calls() != 1 || mock.Requests[0].Message != "Budget alternatives" {
			t.Fatalf("unexpected agent requests %+v", mock.Requests)
		}
		if err := runCommand(ctx, reader, store, conv, "/quick 9"); err == nil {
			t.Fatalf("expected error for unknown quick prompt")
		}
	})

	t.Run("prefs compone y envia", func(t *testing.T) {
		store, conv, mock := newTestConversation(t)
		prefs := bufio.NewReader(strings.NewReader("1\n\n"))
		if err := runCommand(ctx, prefs, store, conv, "/prefs"); err != nil {
			t.Fatalf("prefs: %v", err)
		}
		want := "I prefer a Neutral Elegance color scheme with colors like White, Beige, Light Gray, Cream."
		if mock.Calls() != 1 || mock.Requests[0].Message != want {
			t.Fatalf("unexpected agent requests %+v", mock.Requests)
		}
	})

	t.Run("open activa la sesion", func(t *testing.T) {
		store, conv, _ := newTestConversation(t)
		older, _ := conv.NewSession(ctx)
		_, _ = conv.NewSession(ctx)
		if err := runCommand(ctx, reader, store, conv, "/open 2"); err != nil {
			t.Fatalf("open: %v", err)
		}
		if conv.ActiveSessionID() != older.ID {
			t.Fatalf("expected %s active, got %s", older.ID, conv.ActiveSessionID())
		}
		if err := runCommand(ctx, reader, store, conv, "/open 7"); err == nil {
			t.Fatalf("expected error for out-of-range index")
		}
	})
}
