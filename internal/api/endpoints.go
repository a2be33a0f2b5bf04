package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/iksnae/studymind/internal"
)

// Generate runs a single-shot transform over text
func (c *Client) Generate(ctx context.Context, text string, task internal.Task) (string, error) {
	return c.PostText(ctx, "/generate", GenerateRequest{Text: text, Task: task}, "output")
}

// Chat sends one conversational turn
func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if req.History == nil {
		req.History = []HistoryTurn{}
	}
	return c.PostText(ctx, "/chat", req, "response")
}

// Upload sends a document for text extraction. The result is returned as is;
// use UploadResult.Check to reject unusable extractions.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/upload", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var res UploadResult
	if err := decodeInto(data, &res); err != nil {
		return nil, err
	}
	if res.Filename == "" {
		res.Filename = filepath.Base(filename)
	}
	return &res, nil
}

// UploadFile opens path and uploads it
func (c *Client) UploadFile(ctx context.Context, path string) (*UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return c.Upload(ctx, path, f)
}

// GetTone fetches the user's tone preference
func (c *Client) GetTone(ctx context.Context, userID string) (internal.Tone, error) {
	var body toneBody
	data, err := c.send(ctx, http.MethodGet, "/tone/"+url.PathEscape(userID), nil)
	if err != nil {
		return "", err
	}
	if err := decodeInto(data, &body); err != nil {
		return "", err
	}
	if body.Tone == "" {
		return "", missing("tone", data)
	}
	return body.Tone, nil
}

// SetTone stores the user's tone preference
func (c *Client) SetTone(ctx context.Context, userID string, tone internal.Tone) error {
	return c.PostJSON(ctx, "/tone/"+url.PathEscape(userID), toneBody{Tone: tone}, nil)
}

// CreateContent generates lecture material
func (c *Client) CreateContent(ctx context.Context, req ContentRequest) (string, error) {
	return c.PostText(ctx, "/content/create", req, "content")
}

// Slides turns lecture material into slides
func (c *Client) Slides(ctx context.Context, content string) (string, error) {
	return c.PostText(ctx, "/content/slide", map[string]string{"content": content}, "slides")
}

// AdjustContent simplifies or expands material
func (c *Client) AdjustContent(ctx context.Context, content string, action AdjustAction) (string, error) {
	return c.PostText(ctx, "/content/adjust", adjustBody{Content: content, Action: action}, "content")
}

// SaveContent stores material on the backend and returns where it was saved
func (c *Client) SaveContent(ctx context.Context, req SaveRequest) (string, error) {
	return c.PostText(ctx, "/content/save", req, "saved_path")
}

// Quiz generates a quiz
func (c *Client) Quiz(ctx context.Context, req QuizRequest) (string, error) {
	return c.PostText(ctx, "/quiz", req, "quiz")
}

// Grade grades an answer. A payload with neither grade nor feedback is rejected.
func (c *Client) Grade(ctx context.Context, req GradeRequest) (*GradeResult, error) {
	data, err := c.send(ctx, http.MethodPost, "/grade", req)
	if err != nil {
		return nil, err
	}
	var res GradeResult
	if err := decodeInto(data, &res); err != nil {
		return nil, err
	}
	if res.Grade == nil && res.Feedback == "" {
		return nil, missing("feedback", data)
	}
	return &res, nil
}

// AdminTemplate fills an admin template with variables
func (c *Client) AdminTemplate(ctx context.Context, template string, variables map[string]string) (string, error) {
	if variables == nil {
		variables = map[string]string{}
	}
	return c.PostText(ctx, "/admin/template", adminBody{Template: template, Variables: variables}, "output")
}

// Ideas suggests project ideas
func (c *Client) Ideas(ctx context.Context, req IdeasRequest) (string, error) {
	return c.PostText(ctx, "/ideas", req, "ideas")
}

// Help answers a question about using StudyMind
func (c *Client) Help(ctx context.Context, question string) (string, error) {
	return c.PostText(ctx, "/help", map[string]string{"question": question}, "answer")
}

// History lists the files saved on the backend
func (c *Client) History(ctx context.Context) (*History, error) {
	var h History
	if err := c.GetJSON(ctx, "/history", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Ping checks that the backend answers
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodGet, "/history", nil)
	return err
}
