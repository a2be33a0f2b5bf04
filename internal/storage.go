package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Storage provides the local state: a key/value table standing in for browser
// local storage, and an archive of past conversations.
type Storage struct {
	db   *sql.DB
	path string
}

// NewStorage creates a new Storage instance
func NewStorage(db *sql.DB, path string) *Storage {
	return &Storage{db: db, path: path}
}

// Path returns the database location, for diagnostics
func (s *Storage) Path() string {
	return s.path
}

// DB exposes the underlying database for read-only diagnostics
func (s *Storage) DB() *sql.DB {
	return s.db
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key. ok is false when the key was never written.
func (s *Storage) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (s *Storage) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	return nil
}

// Delete removes key
func (s *Storage) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	return nil
}

// SaveConversation writes the conversation and replaces its stored messages.
// Pending placeholders are transient and are not stored.
func (s *Storage) SaveConversation(rec *ConversationRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("conversation has no id")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO conversations (id, title, preview, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			preview = excluded.preview,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Title, rec.LastMessage, rec.CreatedAt.UnixMilli(), rec.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}

	if _, err := tx.Exec("DELETE FROM messages WHERE conversation_id = ?", rec.ID); err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}

	stmt, err := tx.Prepare(`
		INSERT INTO messages (conversation_id, id, role, content, created_at, task, is_error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	defer stmt.Close()

	for _, msg := range rec.Messages {
		if msg.IsPending {
			continue
		}
		_, err := stmt.Exec(rec.ID, msg.ID, string(msg.Role), msg.Content, msg.CreatedAt.UnixMilli(), string(msg.Task), msg.IsError)
		if err != nil {
			return &StorageError{Path: s.path, Op: "write", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	return nil
}

// ListConversations returns conversation summaries, most recently updated first.
// limit <= 0 returns all of them.
func (s *Storage) ListConversations(limit int) ([]Conversation, error) {
	query := "SELECT id, title, preview, created_at, updated_at FROM conversations ORDER BY updated_at DESC, id"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	defer rows.Close()

	var convs []Conversation
	for rows.Next() {
		var c Conversation
		var created, updated int64
		if err := rows.Scan(&c.ID, &c.Title, &c.LastMessage, &created, &updated); err != nil {
			return nil, &StorageError{Path: s.path, Op: "read", Err: err}
		}
		c.CreatedAt = time.UnixMilli(created)
		c.UpdatedAt = time.UnixMilli(updated)
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	return convs, nil
}

// LoadConversation loads a conversation and its messages in order.
// It returns ErrConversationNotFound for an unknown id.
func (s *Storage) LoadConversation(id string) (*ConversationRecord, error) {
	var rec ConversationRecord
	var created, updated int64
	err := s.db.QueryRow(
		"SELECT id, title, preview, created_at, updated_at FROM conversations WHERE id = ?", id,
	).Scan(&rec.ID, &rec.Title, &rec.LastMessage, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	rec.CreatedAt = time.UnixMilli(created)
	rec.UpdatedAt = time.UnixMilli(updated)

	rows, err := s.db.Query(
		"SELECT id, role, content, created_at, task, is_error FROM messages WHERE conversation_id = ? ORDER BY id", id,
	)
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var msg Message
		var role, task string
		var createdAt int64
		if err := rows.Scan(&msg.ID, &role, &msg.Content, &createdAt, &task, &msg.IsError); err != nil {
			return nil, &StorageError{Path: s.path, Op: "read", Err: err}
		}
		msg.Role, err = ParseRole(role)
		if err != nil {
			return nil, &ParseError{Source: "messages", Key: fmt.Sprintf("%s:%d", id, msg.ID), Err: err}
		}
		msg.Task = Task(task)
		msg.CreatedAt = time.UnixMilli(createdAt)
		rec.Messages = append(rec.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	return &rec, nil
}

// LoadAllConversations loads every archived conversation with its messages
func (s *Storage) LoadAllConversations() ([]*ConversationRecord, error) {
	convs, err := s.ListConversations(0)
	if err != nil {
		return nil, err
	}
	records := make([]*ConversationRecord, 0, len(convs))
	for _, c := range convs {
		rec, err := s.LoadConversation(c.ID)
		if err != nil {
			LogWarn("Failed to load conversation %s: %v", c.ID, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// DeleteConversation removes a conversation and its messages
func (s *Storage) DeleteConversation(id string) error {
	res, err := s.db.Exec("DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	return nil
}
