package cmd

import (
	"net/http"
	"strings"
	"testing"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
	"github.com/iksnae/studymind/internal/chat"
	"github.com/iksnae/studymind/testutil"
)

func TestChatCommand_OneShot(t *testing.T) {
	env := newTestEnv(t)
	env.backend.Handle(http.MethodPost, "/chat", http.StatusOK, `{"response":"Recursion is a function calling itself."}`)

	out, err := env.run("chat", "What", "is", "recursion?")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if !strings.Contains(out, "Recursion is a function calling itself.") {
		t.Errorf("output = %q", out)
	}

	var req api.ChatRequest
	env.backend.RequestsTo("/chat")[0].Decode(t, &req)
	if req.Message != "What is recursion?" || req.UserID != testUser {
		t.Errorf("chat body = %+v", req)
	}
	if len(req.History) != 1 || req.History[0].Content != chat.WelcomeText {
		t.Errorf("history = %+v, want only the welcome message", req.History)
	}

	convs, err := env.store().ListConversations(0)
	if err != nil {
		t.Fatalf("ListConversations() error = %v", err)
	}
	if len(convs) != 1 {
		t.Fatalf("got %d saved conversations, want 1", len(convs))
	}
	rec, err := env.store().LoadConversation(convs[0].ID)
	if err != nil {
		t.Fatalf("LoadConversation() error = %v", err)
	}
	if rec.Title != "What is recursion?" {
		t.Errorf("title = %q", rec.Title)
	}
	if len(rec.Messages) != 3 {
		t.Fatalf("got %d messages, want welcome, question and reply", len(rec.Messages))
	}
	if rec.Messages[2].Role != internal.RoleAssistant || rec.Messages[2].IsError {
		t.Errorf("reply = %+v", rec.Messages[2])
	}
}

func TestChatCommand_BackendError(t *testing.T) {
	env := newTestEnv(t)
	env.backend.Handle(http.MethodPost, "/chat", http.StatusInternalServerError, `{"error":"model overloaded"}`)

	out, err := env.run("chat", "hello")
	if err != nil {
		t.Fatalf("a failed turn is shown, not returned: %v", err)
	}
	if !strings.Contains(out, "model overloaded") {
		t.Errorf("output = %q", out)
	}

	convs, _ := env.store().ListConversations(0)
	if len(convs) != 1 {
		t.Fatalf("got %d saved conversations, want 1", len(convs))
	}
	rec, _ := env.store().LoadConversation(convs[0].ID)
	last := rec.Messages[len(rec.Messages)-1]
	if !last.IsError {
		t.Errorf("last message should be flagged as an error: %+v", last)
	}
}

func TestChatCommand_Continue(t *testing.T) {
	env := newTestEnv(t)
	env.backend.Handle(http.MethodPost, "/chat", http.StatusOK, `{"response":"Sure."}`)

	if _, err := env.run("chat", "first"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	convs, _ := env.store().ListConversations(0)
	id := convs[0].ID

	if _, err := env.run("chat", "--conversation", id, "second"); err != nil {
		t.Fatalf("chat --conversation failed: %v", err)
	}

	reqs := env.backend.RequestsTo("/chat")
	if len(reqs) != 2 {
		t.Fatalf("got %d /chat requests, want 2", len(reqs))
	}
	var req api.ChatRequest
	reqs[1].Decode(t, &req)
	if len(req.History) != 3 || req.History[1].Content != "first" || req.History[2].Content != "Sure." {
		t.Errorf("history = %+v", req.History)
	}

	convs, _ = env.store().ListConversations(0)
	if len(convs) != 1 {
		t.Errorf("got %d conversations, want the same one continued", len(convs))
	}
	rec, _ := env.store().LoadConversation(id)
	if len(rec.Messages) != 5 {
		t.Errorf("got %d messages, want 5", len(rec.Messages))
	}
}

func TestChatCommand_File(t *testing.T) {
	env := newTestEnv(t)
	text := strings.Repeat("The French Revolution began in 1789. ", 3)
	env.backend.Handle(http.MethodPost, "/upload", http.StatusOK, map[string]interface{}{
		"extracted_text": text, "filename": "history.txt", "char_count": len(text), "extraction_status": "success",
	})
	env.backend.Handle(http.MethodPost, "/chat", http.StatusOK, `{"response":"It began in 1789."}`)
	file := testutil.WriteFile(t, t.TempDir(), "history.txt", []byte(text))

	out, err := env.run("chat", "--file", file, "When", "did", "it", "begin?")
	if err != nil {
		t.Fatalf("chat --file failed: %v", err)
	}
	if !strings.Contains(out, "It began in 1789.") {
		t.Errorf("output = %q", out)
	}
	var req api.ChatRequest
	env.backend.RequestsTo("/chat")[0].Decode(t, &req)
	if req.Message != chat.FilePrompt("history.txt", text, "When did it begin?") {
		t.Errorf("chat message = %q", req.Message)
	}
}

func TestChatCommand_Errors(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.run("chat", "--conversation", "missing", "hi"); err == nil || !strings.Contains(err.Error(), "studymind sessions") {
		t.Errorf("error = %v, want a hint to list sessions", err)
	}
	if _, err := env.run("chat", "   "); err == nil {
		t.Error("expected an error for an empty message")
	}
	if env.backend.Count() != 0 {
		t.Errorf("got %d backend requests, want none", env.backend.Count())
	}
}
