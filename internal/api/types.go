package api

import (
	"fmt"
	"strings"

	"github.com/iksnae/studymind/internal"
)

// MinExtractedChars is the smallest extraction considered usable
const MinExtractedChars = 50

// HistoryTurn is one prior message sent along with a chat turn
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message string        `json:"message"`
	UserID  string        `json:"user_id"`
	History []HistoryTurn `json:"history"`
}

// GenerateRequest is the body of POST /generate
type GenerateRequest struct {
	Text string        `json:"text"`
	Task internal.Task `json:"task"`
}

// UploadResult is the response of POST /upload
type UploadResult struct {
	ExtractedText    string `json:"extracted_text"`
	Filename         string `json:"filename"`
	CharCount        int    `json:"char_count"`
	ExtractionStatus string `json:"extraction_status"`
}

// Check fails when the extraction is empty or shorter than MinExtractedChars
func (u *UploadResult) Check() error {
	if u.ExtractedText == "" || u.CharCount < MinExtractedChars {
		return &ExtractionError{Filename: u.Filename, CharCount: u.CharCount}
	}
	return nil
}

type toneBody struct {
	Tone internal.Tone `json:"tone"`
}

// ContentRequest is the body of POST /content/create
type ContentRequest struct {
	Input      string              `json:"input"`
	Difficulty internal.Difficulty `json:"difficulty"`
	UserID     string              `json:"user_id"`
}

// AdjustAction is the direction of POST /content/adjust
type AdjustAction string

const (
	AdjustSimplify AdjustAction = "simplify"
	AdjustExpand   AdjustAction = "expand"
)

// ParseAdjustAction validates an adjust action name
func ParseAdjustAction(s string) (AdjustAction, error) {
	switch a := AdjustAction(strings.ToLower(strings.TrimSpace(s))); a {
	case AdjustSimplify, AdjustExpand:
		return a, nil
	default:
		return "", fmt.Errorf("unknown action %q (supported: simplify, expand)", s)
	}
}

type adjustBody struct {
	Content string       `json:"content"`
	Action  AdjustAction `json:"action"`
}

// SaveRequest is the body of POST /content/save
type SaveRequest struct {
	Content    string `json:"content"`
	Name       string `json:"name"`
	AsMarkdown bool   `json:"as_markdown"`
}

// QuizType selects multiple-choice or short-answer questions
type QuizType string

const (
	QuizMCQ   QuizType = "mcq"
	QuizShort QuizType = "short"
)

// QuizRequest is the body of POST /quiz
type QuizRequest struct {
	Topic      string              `json:"topic"`
	Difficulty internal.Difficulty `json:"difficulty"`
	Type       QuizType            `json:"type"`
	Count      int                 `json:"count"`
}

// GradeRequest is the body of POST /grade. InstructorEdit is sent only when
// an instructor saves edited feedback.
type GradeRequest struct {
	Question       string  `json:"question"`
	Answer         string  `json:"answer"`
	IsCode         bool    `json:"is_code"`
	InstructorEdit *string `json:"instructor_edit,omitempty"`
}

// GradeResult is the response of POST /grade; every field is optional
type GradeResult struct {
	Grade          *float64 `json:"grade,omitempty"`
	Feedback       string   `json:"feedback,omitempty"`
	DetectedIssues []string `json:"detected_issues,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
}

type adminBody struct {
	Template  string            `json:"template"`
	Variables map[string]string `json:"variables"`
}

// IdeasRequest is the body of POST /ideas
type IdeasRequest struct {
	Topic      string              `json:"topic"`
	Level      internal.Difficulty `json:"level"`
	Variations bool                `json:"variations"`
}

// HistoryItem is one saved file reported by GET /history
type HistoryItem struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// History is the response of GET /history
type History struct {
	Items          []HistoryItem `json:"items"`
	GradingEntries int           `json:"grading_entries"`
}
