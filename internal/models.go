package internal

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole converts a stored role string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAssistant:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Message is one entry of a conversation. Messages are owned by exactly one
// conversation and are replaced, never mutated, once appended.
type Message struct {
	ID        int64     `json:"id" yaml:"id"`
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Task      Task      `json:"task,omitempty" yaml:"task,omitempty"`
	IsPending bool      `json:"is_pending,omitempty" yaml:"is_pending,omitempty"`
	IsError   bool      `json:"is_error,omitempty" yaml:"is_error,omitempty"`
}

// Conversation is the summary metadata of an archived chat session
type Conversation struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	LastMessage string    `json:"last_message" yaml:"last_message"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// ConversationRecord is a conversation together with its messages
type ConversationRecord struct {
	Conversation
	Messages []Message `json:"messages" yaml:"messages"`
}

// Task is a single-shot transform requested from /generate
type Task string

const (
	TaskSummarize  Task = "summarize"
	TaskQuiz       Task = "quiz"
	TaskFlashcards Task = "flashcards"
	TaskExplain    Task = "explain"
)

// Tasks lists the generate tasks in display order
var Tasks = []Task{TaskSummarize, TaskQuiz, TaskFlashcards, TaskExplain}

// ParseTask validates a generate task name
func ParseTask(s string) (Task, error) {
	t := Task(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tasks {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown task %q (supported: summarize, quiz, flashcards, explain)", s)
}

var taskLabels = map[Task]string{
	TaskSummarize:  "Summary",
	TaskQuiz:       "Quiz",
	TaskFlashcards: "Flashcards",
	TaskExplain:    "Explanation",
}

var taskDescriptions = map[Task]string{
	TaskSummarize:  "Get key points and main ideas",
	TaskQuiz:       "Test your understanding",
	TaskFlashcards: "Create study cards",
	TaskExplain:    "Detailed breakdown of concepts",
}

// Label returns the display name of the task
func (t Task) Label() string {
	if l, ok := taskLabels[t]; ok {
		return l
	}
	return string(t)
}

// Description returns a one-line description of the task
func (t Task) Description() string {
	return taskDescriptions[t]
}

// Tone is a per-user response style applied by the backend
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneEnthusiastic Tone = "enthusiastic"
	ToneHumorous     Tone = "humorous"
	ToneConcise      Tone = "concise"
	ToneEncouraging  Tone = "encouraging"
	ToneSocratic     Tone = "socratic"
	ToneStoryteller  Tone = "storyteller"
)

// DefaultTone is used until the backend reports the user's preference
const DefaultTone = ToneProfessional

// Tones is the closed set of supported tones
var Tones = []Tone{
	ToneProfessional,
	ToneCasual,
	ToneEnthusiastic,
	ToneHumorous,
	ToneConcise,
	ToneEncouraging,
	ToneSocratic,
	ToneStoryteller,
}

var toneDescriptions = map[Tone]string{
	ToneProfessional: "Clear, formal, and structured - perfect for academic settings",
	ToneCasual:       "Friendly and conversational - like chatting with a colleague",
	ToneEnthusiastic: "Energetic and motivating - brings excitement to learning",
	ToneHumorous:     "Witty and fun, with jokes and personality",
	ToneConcise:      "Brief and to-the-point - no fluff, just facts",
	ToneEncouraging:  "Supportive and motivating - builds confidence",
	ToneSocratic:     "Question-based and thought-provoking - encourages critical thinking",
	ToneStoryteller:  "Narrative-driven with examples and analogies",
}

// Description returns a one-line description of the tone
func (t Tone) Description() string {
	if d, ok := toneDescriptions[t]; ok {
		return d
	}
	return "Unknown tone"
}

// Valid reports whether t is one of the supported tones
func (t Tone) Valid() bool {
	_, ok := toneDescriptions[t]
	return ok
}

// Difficulty is the target level for generated material
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty validates a difficulty name
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (supported: beginner, intermediate, advanced)", s)
	}
}

// Preview shortens content to a single line suitable for lists
func Preview(content string, max int) string {
	line := strings.Join(strings.Fields(content), " ")
	r := []rune(line)
	if max <= 3 || len(r) <= max {
		return line
	}
	return string(r[:max-3]) + "..."
}
