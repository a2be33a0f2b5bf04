// Package chat owns the state of one conversation: the ordered message list,
// the input buffer, the typing flag and the single pending-operation slot.
package chat

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
)

// historySize is how many earlier messages accompany a chat turn
const historySize = 5

// fileLabelPrefix marks the user message shown for an uploaded file
const fileLabelPrefix = "📎 "

var (
	// ErrBusy is returned when a send or operation starts while a reply is awaited
	ErrBusy = errors.New("a response is still pending")

	// ErrNothingToStudy is returned when an operation is selected before any text was sent
	ErrNothingToStudy = errors.New("nothing to study yet: send some text or a file first")
)

// Backend is the part of the backend a conversation talks to
type Backend interface {
	Chat(ctx context.Context, req api.ChatRequest) (string, error)
	Generate(ctx context.Context, text string, task internal.Task) (string, error)
	UploadFile(ctx context.Context, path string) (*api.UploadResult, error)
}

// PendingOperation is the operation whose placeholder is currently shown
type PendingOperation struct {
	Task      internal.Task
	MessageID int64
}

// Conversation is one chat session. Network calls are made without holding
// the lock, so Messages can be rendered while a reply is awaited.
type Conversation struct {
	backend Backend
	userID  string
	now     func() time.Time

	mu        sync.Mutex
	id        string
	createdAt time.Time
	messages  []internal.Message
	input     string
	typing    bool
	pending   *PendingOperation
	source    string
	lastID    int64
}

// Option configures a Conversation
type Option func(*Conversation)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) {
		c.now = now
	}
}

// New starts a conversation seeded with the welcome message
func New(backend Backend, userID string, opts ...Option) *Conversation {
	c := &Conversation{backend: backend, userID: userID, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

// Restore reopens an archived conversation
func Restore(backend Backend, userID string, rec *internal.ConversationRecord, opts ...Option) *Conversation {
	c := &Conversation{backend: backend, userID: userID, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.id = rec.ID
	c.createdAt = rec.CreatedAt
	c.messages = append([]internal.Message(nil), rec.Messages...)
	for _, m := range c.messages {
		if m.ID > c.lastID {
			c.lastID = m.ID
		}
		// file turns only keep their label, not the extracted text
		if m.Role == internal.RoleUser && !strings.HasPrefix(m.Content, fileLabelPrefix) {
			c.source = m.Content
		}
	}
	return c
}

// ID returns the conversation id
func (c *Conversation) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Append inserts msg at the end. A zero id or timestamp is filled in.
// Placeholders are created only by SelectOperation, so IsPending is cleared.
func (c *Conversation) Append(msg internal.Message) internal.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg.IsPending = false
	return c.appendLocked(msg)
}

// Messages returns a copy of the message list
func (c *Conversation) Messages() []internal.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]internal.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// SetInput replaces the input buffer
func (c *Conversation) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// Input returns the input buffer
func (c *Conversation) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// IsTyping reports whether a chat reply is awaited
func (c *Conversation) IsTyping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// Pending returns the operation in progress, or nil
func (c *Conversation) Pending() *PendingOperation {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	p := *c.pending
	return &p
}

// Busy reports whether new sends and operations are currently refused
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busyLocked()
}

// SendUserText sends text as a chat turn. Blank text is ignored. Backend
// failures become one error-flagged assistant message and are not returned.
func (c *Conversation) SendUserText(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.mu.Lock()
	if c.busyLocked() {
		c.mu.Unlock()
		return ErrBusy
	}
	history := c.historyLocked()
	c.appendLocked(internal.Message{Role: internal.RoleUser, Content: text})
	c.input = ""
	c.typing = true
	c.source = text
	c.mu.Unlock()

	reply, err := c.backend.Chat(ctx, api.ChatRequest{Message: text, UserID: c.userID, History: history})
	c.finishChat(reply, err)
	return nil
}

// SendFile uploads path and asks question about its text. An empty question
// asks for a summary. An extraction that is empty or too short stops before
// the chat call.
func (c *Conversation) SendFile(ctx context.Context, path, question string) error {
	name := filepath.Base(path)

	c.mu.Lock()
	if c.busyLocked() {
		c.mu.Unlock()
		return ErrBusy
	}
	history := c.historyLocked()
	c.appendLocked(internal.Message{Role: internal.RoleUser, Content: fmt.Sprintf("%s%s\n\n%s", fileLabelPrefix, name, question)})
	c.input = ""
	c.typing = true
	c.mu.Unlock()

	res, err := c.backend.UploadFile(ctx, path)
	if err != nil {
		c.finishChat("", err)
		return nil
	}
	internal.LogDebug("Uploaded %s: status=%s chars=%d", res.Filename, res.ExtractionStatus, res.CharCount)

	if err := res.Check(); err != nil {
		internal.LogWarn("Extraction failed for %s: %v", res.Filename, err)
		c.mu.Lock()
		c.typing = false
		c.appendLocked(internal.Message{
			Role:    internal.RoleAssistant,
			Content: extractionFailedText(res.Filename),
			IsError: true,
		})
		c.mu.Unlock()
		return nil
	}

	prompt := FilePrompt(res.Filename, res.ExtractedText, question)
	c.mu.Lock()
	c.source = prompt
	c.mu.Unlock()

	reply, err := c.backend.Chat(ctx, api.ChatRequest{Message: prompt, UserID: c.userID, History: history})
	c.finishChat(reply, err)
	return nil
}

// SelectOperation runs task over the most recent study text. A placeholder is
// shown until the result replaces it.
func (c *Conversation) SelectOperation(ctx context.Context, task internal.Task) error {
	if _, err := internal.ParseTask(string(task)); err != nil {
		return err
	}

	c.mu.Lock()
	if c.busyLocked() {
		c.mu.Unlock()
		return ErrBusy
	}
	source := c.source
	if strings.TrimSpace(source) == "" {
		c.mu.Unlock()
		return ErrNothingToStudy
	}
	placeholder := c.appendLocked(internal.Message{
		Role:      internal.RoleAssistant,
		Content:   fmt.Sprintf("Creating your %s...", strings.ToLower(task.Label())),
		Task:      task,
		IsPending: true,
	})
	c.pending = &PendingOperation{Task: task, MessageID: placeholder.ID}
	c.mu.Unlock()

	out, err := c.backend.Generate(ctx, source, task)
	if err != nil {
		internal.LogWarn("%s failed: %v", task, err)
		c.CompleteWithResult(api.Describe(err), true)
		return nil
	}
	c.CompleteWithResult(out, false)
	return nil
}

// CompleteWithResult removes the pending placeholder, if any, and appends
// exactly one terminal message. It also clears the typing flag.
func (c *Conversation) CompleteWithResult(content string, isError bool) internal.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := internal.Message{Role: internal.RoleAssistant, Content: content, IsError: isError}
	if c.pending != nil {
		msg.Task = c.pending.Task
		c.removeLocked(c.pending.MessageID)
		c.pending = nil
	}
	c.typing = false
	return c.appendLocked(msg)
}

// Announce appends an informational assistant message
func (c *Conversation) Announce(content string) {
	c.Append(internal.Message{Role: internal.RoleAssistant, Content: content})
}

// Reset starts a new conversation in place
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Record snapshots the conversation for the archive
func (c *Conversation) Record() *internal.ConversationRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := &internal.ConversationRecord{
		Conversation: internal.Conversation{
			ID:        c.id,
			Title:     "New conversation",
			CreatedAt: c.createdAt,
			UpdatedAt: c.createdAt,
		},
	}
	for _, m := range c.messages {
		if m.IsPending {
			continue
		}
		rec.Messages = append(rec.Messages, m)
	}
	for _, m := range rec.Messages {
		if m.Role == internal.RoleUser {
			rec.Title = internal.Preview(m.Content, 48)
			break
		}
	}
	if n := len(rec.Messages); n > 0 {
		last := rec.Messages[n-1]
		rec.LastMessage = internal.Preview(last.Content, 80)
		rec.UpdatedAt = last.CreatedAt
	}
	return rec
}

// HasUserMessages reports whether the user has said anything yet
func (c *Conversation) HasUserMessages() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.messages {
		if m.Role == internal.RoleUser {
			return true
		}
	}
	return false
}

func (c *Conversation) finishChat(reply string, err error) {
	if err != nil {
		internal.LogWarn("Chat request failed: %v", err)
		c.CompleteWithResult(ConnectionErrorText(err), true)
		return
	}
	c.CompleteWithResult(reply, false)
}

func (c *Conversation) reset() {
	c.id = uuid.NewString()
	c.createdAt = c.now()
	c.messages = nil
	c.input = ""
	c.typing = false
	c.pending = nil
	c.source = ""
	c.appendLocked(internal.Message{Role: internal.RoleAssistant, Content: WelcomeText})
}

func (c *Conversation) busyLocked() bool {
	return c.typing || c.pending != nil
}

func (c *Conversation) historyLocked() []api.HistoryTurn {
	var eligible []internal.Message
	for _, m := range c.messages {
		if !m.IsPending {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) > historySize {
		eligible = eligible[len(eligible)-historySize:]
	}
	turns := make([]api.HistoryTurn, 0, len(eligible))
	for _, m := range eligible {
		role := "assistant"
		if m.Role == internal.RoleUser {
			role = "user"
		}
		turns = append(turns, api.HistoryTurn{Role: role, Content: m.Content})
	}
	return turns
}

func (c *Conversation) appendLocked(msg internal.Message) internal.Message {
	now := c.now()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now
	}
	if msg.ID == 0 {
		msg.ID = now.UnixMilli()
		if msg.ID <= c.lastID {
			msg.ID = c.lastID + 1
		}
	}
	if msg.ID > c.lastID {
		c.lastID = msg.ID
	}
	c.messages = append(c.messages, msg)
	return msg
}

func (c *Conversation) removeLocked(id int64) {
	kept := c.messages[:0]
	for _, m := range c.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	c.messages = kept
}
