package internal

import (
	"fmt"
	"time"
)

// Normalizer converts archived conversations to Session format
type Normalizer struct {
	userID string
}

// NewNormalizer creates a new Normalizer. userID is stamped on every session.
func NewNormalizer(userID string) *Normalizer {
	return &Normalizer{userID: userID}
}

// NormalizeConversation converts a ConversationRecord to a Session
func (n *Normalizer) NormalizeConversation(rec *ConversationRecord) (*Session, error) {
	if rec == nil {
		return nil, fmt.Errorf("conversation is nil")
	}

	entries := make([]Entry, 0, len(rec.Messages))
	for _, msg := range rec.Messages {
		// placeholders never reach a transcript
		if msg.IsPending {
			continue
		}
		entries = append(entries, n.normalizeMessage(msg))
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}

	metadata := Metadata{
		Title:        rec.Title,
		MessageCount: len(entries),
		CreatedAt:    formatTimestamp(rec.CreatedAt),
		UpdatedAt:    formatTimestamp(rec.UpdatedAt),
	}

	return &Session{
		ID:       rec.ID,
		UserID:   n.userID,
		Source:   "studymind",
		Messages: entries,
		Metadata: metadata,
	}, nil
}

func (n *Normalizer) normalizeMessage(msg Message) Entry {
	return Entry{
		ID:        msg.ID,
		Timestamp: formatTimestamp(msg.CreatedAt),
		Actor:     n.normalizeActor(msg.Role),
		Content:   msg.Content,
		Task:      string(msg.Task),
		Error:     msg.IsError,
	}
}

// normalizeActor maps a role to the transcript actor label
func (n *Normalizer) normalizeActor(role Role) string {
	switch role {
	case RoleAssistant:
		return "assistant"
	default:
		return "user"
	}
}

// formatTimestamp formats t as RFC3339, or "" for the zero time
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// NormalizeAll normalizes every record, skipping the ones that cannot be normalized
func (n *Normalizer) NormalizeAll(records []*ConversationRecord) []*Session {
	var sessions []*Session
	for _, rec := range records {
		session, err := n.NormalizeConversation(rec)
		if err != nil {
			LogDebug("Skipping conversation: %v", err)
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions
}
