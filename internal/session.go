package internal

// Session represents a normalized conversation transcript ready for export
type Session struct {
	ID       string   `json:"id" yaml:"id"`
	UserID   string   `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Source   string   `json:"source" yaml:"source"` // "studymind"
	Messages []Entry  `json:"messages" yaml:"messages"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Entry represents a normalized transcript message
type Entry struct {
	ID        int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Actor     string `json:"actor" yaml:"actor"` // "user", "assistant"
	Content   string `json:"content" yaml:"content"`
	Task      string `json:"task,omitempty" yaml:"task,omitempty"`
	Error     bool   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Metadata contains additional session information
type Metadata struct {
	Title        string `json:"title,omitempty" yaml:"title,omitempty"`
	CreatedAt    string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	MessageCount int    `json:"message_count" yaml:"message_count"`
}
