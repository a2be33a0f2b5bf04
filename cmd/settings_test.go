package cmd

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/iksnae/studymind/internal/prefs"
	"github.com/iksnae/studymind/internal/tone"
	"github.com/iksnae/studymind/testutil"
)

func TestToneCommand(t *testing.T) {
	env := newTestEnv(t)
	env.backend.Handle(http.MethodGet, "/tone/"+testUser, http.StatusOK, `{"tone":"socratic"}`)

	out, err := env.run("tone")
	if err != nil {
		t.Fatalf("tone failed: %v", err)
	}
	if !strings.Contains(out, "Current tone: socratic") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "▸ socratic") {
		t.Errorf("the active tone should be marked:\n%s", out)
	}
	if strings.Contains(out, "▸ professional") {
		t.Errorf("only the active tone should be marked:\n%s", out)
	}
}

func TestToneCommand_BackendDown(t *testing.T) {
	env := newTestEnv(t)
	env.backend.Handle(http.MethodGet, "/tone/"+testUser, http.StatusInternalServerError, `{"error":"boom"}`)

	out, err := env.run("tone")
	if err != nil {
		t.Fatalf("tone should fall back to the default, got %v", err)
	}
	if !strings.Contains(out, "Current tone: professional") {
		t.Errorf("output = %q", out)
	}
}

func TestToneSetCommand(t *testing.T) {
	env := newTestEnv(t)
	env.backend.Handle(http.MethodGet, "/tone/"+testUser, http.StatusOK, `{"tone":"professional"}`)
	env.backend.Handle(http.MethodPost, "/tone/"+testUser, http.StatusOK, `{"tone":"casual"}`)

	out, err := env.run("tone", "set", "Casual")
	if err != nil {
		t.Fatalf("tone set failed: %v", err)
	}
	if strings.TrimSpace(out) != tone.Announcement("casual") {
		t.Errorf("output = %q", out)
	}

	posts := 0
	for _, r := range env.backend.RequestsTo("/tone/" + testUser) {
		if r.Method != http.MethodPost {
			continue
		}
		posts++
		var body map[string]string
		r.Decode(t, &body)
		if body["tone"] != "casual" {
			t.Errorf("posted tone = %q, want casual", body["tone"])
		}
	}
	if posts != 1 {
		t.Errorf("got %d POSTs, want 1", posts)
	}
}

func TestToneSetCommand_NoChange(t *testing.T) {
	env := newTestEnv(t)
	env.backend.Handle(http.MethodGet, "/tone/"+testUser, http.StatusOK, `{"tone":"concise"}`)

	out, err := env.run("tone", "set", "concise")
	if err != nil {
		t.Fatalf("tone set failed: %v", err)
	}
	if out != "" {
		t.Errorf("unchanged tone should print nothing to stdout, got %q", out)
	}
	for _, r := range env.backend.Requests() {
		if r.Method == http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.Path)
		}
	}
}

func TestToneSetCommand_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.backend.Handle(http.MethodGet, "/tone/"+testUser, http.StatusOK, `{"tone":"professional"}`)
	env.backend.Handle(http.MethodPost, "/tone/"+testUser, http.StatusBadRequest, `{"error":"tone service offline"}`)

	_, err := env.run("tone", "set", "pirate")
	if !errors.Is(err, tone.ErrUnknownTone) {
		t.Fatalf("error = %v, want ErrUnknownTone", err)
	}
	if !strings.Contains(err.Error(), "storyteller") {
		t.Errorf("error should list the available tones: %q", err.Error())
	}

	_, err = env.run("tone", "set", "humorous")
	if err == nil {
		t.Fatal("expected the backend failure to be returned")
	}
	if err.Error() != "tone service offline" {
		t.Errorf("error = %q", err.Error())
	}

	// not a terminal in tests, so no menu
	if _, err := env.run("tone", "set"); err == nil || !strings.Contains(err.Error(), "no tone given") {
		t.Errorf("error = %v, want no tone given", err)
	}
}

func TestThemeCommand(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"theme"}, "Theme: light"},
		{[]string{"theme", "toggle"}, "Theme: dark"},
		{[]string{"theme"}, "Theme: dark"},
		{[]string{"theme", "light"}, "Theme: light"},
		{[]string{"theme", "dark"}, "Theme: dark"},
	}
	for _, tt := range tests {
		out, err := env.run(tt.args...)
		if err != nil {
			t.Fatalf("%v failed: %v", tt.args, err)
		}
		if strings.TrimSpace(out) != tt.want {
			t.Errorf("%v output = %q, want %q", tt.args, out, tt.want)
		}
	}

	got, _, err := env.store().Get(prefs.KeyTheme)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "dark" {
		t.Errorf("stored theme = %q, want dark", got)
	}

	if _, err := env.run("theme", "blue"); err == nil {
		t.Error("expected an error for an unknown theme action")
	}
	if env.backend.Count() != 0 {
		t.Errorf("theme changes should stay local, got %d requests", env.backend.Count())
	}
}

func TestSidebarCommand(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"sidebar"}, "Sidebar: open"},
		{[]string{"sidebar", "toggle"}, "Sidebar: closed"},
		{[]string{"sidebar", "open"}, "Sidebar: open"},
		{[]string{"sidebar", "close"}, "Sidebar: closed"},
		{[]string{"sidebar"}, "Sidebar: closed"},
	}
	for _, tt := range tests {
		out, err := env.run(tt.args...)
		if err != nil {
			t.Fatalf("%v failed: %v", tt.args, err)
		}
		if strings.TrimSpace(out) != tt.want {
			t.Errorf("%v output = %q, want %q", tt.args, out, tt.want)
		}
	}

	if _, err := env.run("sidebar", "hide"); err == nil {
		t.Error("expected an error for an unknown sidebar action")
	}
}

func TestContextCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("context")
	if err != nil {
		t.Fatalf("context failed: %v", err)
	}
	if strings.TrimSpace(out) != "No context text" {
		t.Errorf("output = %q", out)
	}

	if _, err := env.run("context", "set", "Chapter", "3", "covers", "hash", "tables"); err != nil {
		t.Fatalf("context set failed: %v", err)
	}
	out, err = env.run("context", "show")
	if err != nil {
		t.Fatalf("context show failed: %v", err)
	}
	if strings.TrimSpace(out) != "Chapter 3 covers hash tables" {
		t.Errorf("output = %q", out)
	}

	file := testutil.WriteFile(t, t.TempDir(), "notes.txt", []byte("Notes from a file"))
	if _, err := env.run("context", "set", "--file", file); err != nil {
		t.Fatalf("context set --file failed: %v", err)
	}
	got, _, _ := env.store().Get(prefs.KeyContextText)
	if got != "Notes from a file" {
		t.Errorf("stored context = %q", got)
	}

	if _, err := env.run("context", "clear"); err != nil {
		t.Fatalf("context clear failed: %v", err)
	}
	out, _ = env.run("context")
	if strings.TrimSpace(out) != "No context text" {
		t.Errorf("after clear output = %q", out)
	}

	for _, args := range [][]string{
		{"context", "set"},
		{"context", "set", "   "},
		{"context", "reset"},
		{"context", "show", "extra"},
	} {
		if _, err := env.run(args...); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
}
