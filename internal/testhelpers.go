package internal

import (
	"time"
)

// CreateTestSession creates a test transcript with a question and an answer
func CreateTestSession(id string) *Session {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Session{
		ID:     id,
		UserID: "default_user",
		Source: "studymind",
		Messages: []Entry{
			{
				Actor:     "user",
				Content:   "Explain recursion",
				Timestamp: now,
			},
			{
				Actor:     "assistant",
				Content:   "Recursion is when a function calls itself.",
				Timestamp: now,
				Task:      string(TaskExplain),
			},
		},
		Metadata: Metadata{
			Title:        "Test Conversation",
			MessageCount: 2,
			CreatedAt:    now,
		},
	}
}

// CreateTestSessionWithEntries creates a test transcript with custom entries
func CreateTestSessionWithEntries(id string, entries []Entry) *Session {
	return &Session{
		ID:       id,
		Source:   "studymind",
		Messages: entries,
		Metadata: Metadata{
			MessageCount: len(entries),
		},
	}
}

// CreateTestRecord creates an archived conversation with a short exchange
func CreateTestRecord(id, title string, updated time.Time) *ConversationRecord {
	return &ConversationRecord{
		Conversation: Conversation{
			ID:          id,
			Title:       title,
			LastMessage: "Recursion is when a function calls itself.",
			CreatedAt:   updated.Add(-time.Minute),
			UpdatedAt:   updated,
		},
		Messages: []Message{
			{ID: updated.UnixMilli() - 2, Role: RoleUser, Content: "Explain recursion", CreatedAt: updated.Add(-time.Minute)},
			{ID: updated.UnixMilli() - 1, Role: RoleAssistant, Content: "Recursion is when a function calls itself.", CreatedAt: updated, Task: TaskExplain},
		},
	}
}
