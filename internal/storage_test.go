package internal

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/iksnae/studymind/testutil"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	path := filepath.Join(testutil.CreateTempDir(t), "state.db")
	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	s := NewStorage(db, path)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_KV(t *testing.T) {
	s := newTestStorage(t)

	if _, ok, err := s.Get("theme"); err != nil || ok {
		t.Fatalf("Get(missing) ok = %v, err = %v; want false, nil", ok, err)
	}

	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set("theme", "light"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	v, ok, err := s.Get("theme")
	if err != nil || !ok || v != "light" {
		t.Errorf("Get(theme) = %q, %v, %v; want light, true, nil", v, ok, err)
	}

	if err := s.Delete("theme"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := s.Get("theme"); ok {
		t.Error("key should be gone after Delete")
	}
}

func TestStorage_ConversationRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	now := time.UnixMilli(1767225600000)

	rec := &ConversationRecord{
		Conversation: Conversation{
			ID:          "conv-1",
			Title:       "Binary trees",
			LastMessage: "Here is a summary",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Messages: []Message{
			{ID: 10, Role: RoleAssistant, Content: "Hello!", CreatedAt: now},
			{ID: 11, Role: RoleUser, Content: "Summarize binary trees", CreatedAt: now},
			{ID: 12, Role: RoleAssistant, Content: "Creating...", CreatedAt: now, IsPending: true},
			{ID: 13, Role: RoleAssistant, Content: "Here is a summary", CreatedAt: now, Task: TaskSummarize},
			{ID: 14, Role: RoleAssistant, Content: "🔌 Error", CreatedAt: now, IsError: true},
		},
	}

	if err := s.SaveConversation(rec); err != nil {
		t.Fatalf("SaveConversation() error = %v", err)
	}

	got, err := s.LoadConversation("conv-1")
	if err != nil {
		t.Fatalf("LoadConversation() error = %v", err)
	}
	if got.Title != "Binary trees" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Messages) != 4 {
		t.Fatalf("len(Messages) = %d, want 4 (pending placeholder is not stored)", len(got.Messages))
	}
	if got.Messages[2].Task != TaskSummarize {
		t.Errorf("Messages[2].Task = %q, want summarize", got.Messages[2].Task)
	}
	if !got.Messages[3].IsError {
		t.Error("Messages[3].IsError should be true")
	}
	if !got.Messages[0].CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", got.Messages[0].CreatedAt, now)
	}

	// saving again replaces messages instead of duplicating them
	rec.Messages = rec.Messages[:2]
	rec.UpdatedAt = now.Add(time.Minute)
	if err := s.SaveConversation(rec); err != nil {
		t.Fatalf("SaveConversation() second save error = %v", err)
	}
	got, err = s.LoadConversation("conv-1")
	if err != nil {
		t.Fatalf("LoadConversation() error = %v", err)
	}
	if len(got.Messages) != 2 {
		t.Errorf("len(Messages) after resave = %d, want 2", len(got.Messages))
	}
}

func TestStorage_ListConversations(t *testing.T) {
	s := newTestStorage(t)
	base := time.UnixMilli(1767225600000)

	for i, id := range []string{"old", "newest", "middle"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		rec := &ConversationRecord{
			Conversation: Conversation{ID: id, Title: id, CreatedAt: base, UpdatedAt: base.Add(offsets[i])},
		}
		if err := s.SaveConversation(rec); err != nil {
			t.Fatalf("SaveConversation(%s) error = %v", id, err)
		}
	}

	convs, err := s.ListConversations(0)
	if err != nil {
		t.Fatalf("ListConversations() error = %v", err)
	}
	want := []string{"newest", "middle", "old"}
	if len(convs) != len(want) {
		t.Fatalf("len = %d, want %d", len(convs), len(want))
	}
	for i, id := range want {
		if convs[i].ID != id {
			t.Errorf("convs[%d].ID = %q, want %q", i, convs[i].ID, id)
		}
	}

	limited, err := s.ListConversations(1)
	if err != nil || len(limited) != 1 {
		t.Errorf("ListConversations(1) = %d items, err %v", len(limited), err)
	}

	all, err := s.LoadAllConversations()
	if err != nil || len(all) != 3 {
		t.Errorf("LoadAllConversations() = %d records, err %v", len(all), err)
	}
}

func TestStorage_NotFound(t *testing.T) {
	s := newTestStorage(t)

	if _, err := s.LoadConversation("missing"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("LoadConversation(missing) error = %v, want ErrConversationNotFound", err)
	}
	if err := s.DeleteConversation("missing"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("DeleteConversation(missing) error = %v, want ErrConversationNotFound", err)
	}
	if err := s.SaveConversation(&ConversationRecord{}); err == nil {
		t.Error("SaveConversation() without id should fail")
	}
}

func TestStorage_DeleteConversation(t *testing.T) {
	s := newTestStorage(t)
	rec := &ConversationRecord{
		Conversation: Conversation{ID: "gone", CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Messages:     []Message{{ID: 1, Role: RoleUser, Content: "hi", CreatedAt: time.Now()}},
	}
	if err := s.SaveConversation(rec); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteConversation("gone"); err != nil {
		t.Fatalf("DeleteConversation() error = %v", err)
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM messages WHERE conversation_id = 'gone'").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("messages left after delete = %d, want 0", n)
	}
}
