package panel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
)

// Backend is every endpoint the panels call
type Backend interface {
	Generate(ctx context.Context, text string, task internal.Task) (string, error)
	CreateContent(ctx context.Context, req api.ContentRequest) (string, error)
	Slides(ctx context.Context, content string) (string, error)
	AdjustContent(ctx context.Context, content string, action api.AdjustAction) (string, error)
	SaveContent(ctx context.Context, req api.SaveRequest) (string, error)
	Quiz(ctx context.Context, req api.QuizRequest) (string, error)
	Grade(ctx context.Context, req api.GradeRequest) (*api.GradeResult, error)
	AdminTemplate(ctx context.Context, template string, variables map[string]string) (string, error)
	Ideas(ctx context.Context, req api.IdeasRequest) (string, error)
	Help(ctx context.Context, question string) (string, error)
	UploadFile(ctx context.Context, path string) (*api.UploadResult, error)
	History(ctx context.Context) (*api.History, error)
}

// ContextStore holds the context text shared between panels
type ContextStore interface {
	ContextText() string
	SetContextText(text string) error
}

// saver stores a panel's output on the backend under a fixed name
type saver struct {
	backend  Backend
	name     string
	markdown bool
	cycle    Cycle[string]
}

// Save stores content and returns the saved path
func (s *saver) save(ctx context.Context, content string) (string, error) {
	return s.cycle.Submit(ctx,
		func() error {
			if strings.TrimSpace(content) == "" {
				return missingInput("content to save")
			}
			return nil
		},
		func(ctx context.Context) (string, error) {
			return s.backend.SaveContent(ctx, api.SaveRequest{Content: content, Name: s.name, AsMarkdown: s.markdown})
		})
}

func output(c *Cycle[string]) string {
	v, _ := c.Result()
	return v
}

// Generator runs the single-shot transforms of /generate
type Generator struct {
	backend Backend
	Cycle[string]
}

// NewGenerator creates a generator panel
func NewGenerator(b Backend) *Generator {
	return &Generator{backend: b}
}

// Run transforms the form text
func (g *Generator) Run(ctx context.Context, f GenerateForm) (string, error) {
	return g.Submit(ctx, f.Validate, func(ctx context.Context) (string, error) {
		return g.backend.Generate(ctx, f.Text, f.Task)
	})
}

// Content generates lecture material and derives slides from it
type Content struct {
	backend Backend
	ctx     ContextStore
	userID  string

	Cycle[string]
	saver saver

	mu      sync.Mutex
	lecture string
	slides  string
}

// NewContent creates a content panel; store may be nil
func NewContent(b Backend, store ContextStore, userID string) *Content {
	return &Content{
		backend: b,
		ctx:     store,
		userID:  userID,
		saver:   saver{backend: b, name: "lecture", markdown: true},
	}
}

// WithContext appends the shared context text to input
func WithContext(input string, store ContextStore) string {
	if store == nil {
		return input
	}
	if ctxText := store.ContextText(); strings.TrimSpace(ctxText) != "" {
		return fmt.Sprintf("%s\n\nContext:\n%s", input, ctxText)
	}
	return input
}

// Create generates lecture material. Earlier slides are discarded.
func (c *Content) Create(ctx context.Context, f ContentForm) (string, error) {
	out, err := c.Submit(ctx, f.Validate, func(ctx context.Context) (string, error) {
		c.mu.Lock()
		c.slides = ""
		c.mu.Unlock()
		return c.backend.CreateContent(ctx, api.ContentRequest{
			Input:      WithContext(f.Input, c.ctx),
			Difficulty: f.Difficulty,
			UserID:     c.userID,
		})
	})
	if err != nil {
		return "", err
	}
	c.SetLecture(out)
	return out, nil
}

// MakeSlides turns the lecture into slides
func (c *Content) MakeSlides(ctx context.Context) (string, error) {
	lecture := c.Lecture()
	out, err := c.Submit(ctx, nonEmpty(lecture, "lecture"), func(ctx context.Context) (string, error) {
		return c.backend.Slides(ctx, lecture)
	})
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.slides = out
	c.mu.Unlock()
	return out, nil
}

// Adjust simplifies or expands the base material and replaces it with the result
func (c *Content) Adjust(ctx context.Context, action api.AdjustAction) (string, error) {
	base := c.Base()
	out, err := c.Submit(ctx, nonEmpty(base, "content"), func(ctx context.Context) (string, error) {
		return c.backend.AdjustContent(ctx, base, action)
	})
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	if strings.TrimSpace(c.slides) != "" {
		c.slides = out
	} else {
		c.lecture = out
	}
	c.mu.Unlock()
	return out, nil
}

// Save stores the base material as "lecture"
func (c *Content) Save(ctx context.Context) (string, error) {
	return c.saver.save(ctx, c.Base())
}

// Base is the slides when there are any, otherwise the lecture
func (c *Content) Base() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(c.slides) != "" {
		return c.slides
	}
	return c.lecture
}

// Lecture returns the current lecture material
func (c *Content) Lecture() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lecture
}

// SlidesText returns the current slides
func (c *Content) SlidesText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slides
}

// SetLecture replaces the lecture, for example with text read from a file
func (c *Content) SetLecture(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lecture = text
}

// SetSlides replaces the slides
func (c *Content) SetSlides(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slides = text
}

// Quiz generates quizzes
type Quiz struct {
	backend Backend
	ctx     ContextStore
	Cycle[string]
	saver saver
}

// NewQuiz creates a quiz panel; store may be nil
func NewQuiz(b Backend, store ContextStore) *Quiz {
	return &Quiz{backend: b, ctx: store, saver: saver{backend: b, name: "quiz", markdown: true}}
}

// Generate creates a quiz for the form topic
func (q *Quiz) Generate(ctx context.Context, f QuizForm) (string, error) {
	return q.Submit(ctx, f.Validate, func(ctx context.Context) (string, error) {
		topic := f.Topic
		if q.ctx != nil {
			if ctxText := q.ctx.ContextText(); strings.TrimSpace(ctxText) != "" {
				topic = fmt.Sprintf("%s (use this context if helpful)\n\n%s", f.Topic, ctxText)
			}
		}
		return q.backend.Quiz(ctx, api.QuizRequest{Topic: topic, Difficulty: f.Difficulty, Type: f.Type, Count: f.Count})
	})
}

// Save stores the last quiz as "quiz"
func (q *Quiz) Save(ctx context.Context) (string, error) {
	return q.saver.save(ctx, output(&q.Cycle))
}

// Grading grades answers and lets an instructor save edited feedback
type Grading struct {
	backend Backend
	Cycle[*api.GradeResult]

	mu     sync.Mutex
	edited string
}

// NewGrading creates a grading panel
func NewGrading(b Backend) *Grading {
	return &Grading{backend: b}
}

// Grade grades the form. The returned feedback becomes the editable feedback.
func (g *Grading) Grade(ctx context.Context, f GradingForm) (*api.GradeResult, error) {
	res, err := g.Submit(ctx, f.Validate, func(ctx context.Context) (*api.GradeResult, error) {
		return g.backend.Grade(ctx, api.GradeRequest{Question: f.Question, Answer: f.Answer, IsCode: f.IsCode})
	})
	if err != nil {
		return nil, err
	}
	if res.Feedback != "" {
		g.SetEditedFeedback(res.Feedback)
	}
	return res, nil
}

// SaveEdit resubmits the form with the instructor's edited feedback
func (g *Grading) SaveEdit(ctx context.Context, f GradingForm) (*api.GradeResult, error) {
	edit := g.EditedFeedback()
	validate := func() error {
		if err := f.Validate(); err != nil {
			return err
		}
		return nonEmpty(edit, "edited feedback")()
	}
	return g.Submit(ctx, validate, func(ctx context.Context) (*api.GradeResult, error) {
		return g.backend.Grade(ctx, api.GradeRequest{Question: f.Question, Answer: f.Answer, IsCode: f.IsCode, InstructorEdit: &edit})
	})
}

// EditedFeedback returns the feedback as edited by the instructor
func (g *Grading) EditedFeedback() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.edited
}

// SetEditedFeedback replaces the editable feedback
func (g *Grading) SetEditedFeedback(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edited = text
}

// Admin fills admin templates
type Admin struct {
	backend Backend
	Cycle[string]
	saver saver
}

// NewAdmin creates an admin tools panel
func NewAdmin(b Backend) *Admin {
	return &Admin{backend: b, saver: saver{backend: b, name: "admin", markdown: true}}
}

// Run fills the form's template
func (a *Admin) Run(ctx context.Context, f AdminForm) (string, error) {
	return a.Submit(ctx, f.Validate, func(ctx context.Context) (string, error) {
		return a.backend.AdminTemplate(ctx, f.Template, f.Variables)
	})
}

// Save stores the last output as "admin"
func (a *Admin) Save(ctx context.Context) (string, error) {
	return a.saver.save(ctx, output(&a.Cycle))
}

// Ideas suggests project ideas
type Ideas struct {
	backend Backend
	Cycle[string]
	saver saver
}

// NewIdeas creates a project ideas panel
func NewIdeas(b Backend) *Ideas {
	return &Ideas{backend: b, saver: saver{backend: b, name: "ideas", markdown: true}}
}

// Run asks for ideas
func (i *Ideas) Run(ctx context.Context, f IdeasForm) (string, error) {
	return i.Submit(ctx, f.Validate, func(ctx context.Context) (string, error) {
		return i.backend.Ideas(ctx, api.IdeasRequest{Topic: f.Topic, Level: f.Level, Variations: f.Variations})
	})
}

// Save stores the last ideas as "ideas"
func (i *Ideas) Save(ctx context.Context) (string, error) {
	return i.saver.save(ctx, output(&i.Cycle))
}

// Help answers questions about the product
type Help struct {
	backend Backend
	Cycle[string]
}

// NewHelp creates a help panel
func NewHelp(b Backend) *Help {
	return &Help{backend: b}
}

// Ask sends the question
func (h *Help) Ask(ctx context.Context, f HelpForm) (string, error) {
	return h.Submit(ctx, f.Validate, func(ctx context.Context) (string, error) {
		return h.backend.Help(ctx, f.Question)
	})
}

// Upload extracts text from documents and can hand it to the other panels
type Upload struct {
	backend Backend
	ctx     ContextStore
	Cycle[*api.UploadResult]
	saver saver
}

// NewUpload creates an upload panel; store may be nil
func NewUpload(b Backend, store ContextStore) *Upload {
	return &Upload{backend: b, ctx: store, saver: saver{backend: b, name: "upload", markdown: false}}
}

// Extract uploads the file and returns the extraction as reported
func (u *Upload) Extract(ctx context.Context, f UploadForm) (*api.UploadResult, error) {
	return u.Submit(ctx, f.Validate, func(ctx context.Context) (*api.UploadResult, error) {
		return u.backend.UploadFile(ctx, f.Path)
	})
}

// Extracted returns the text of the last extraction
func (u *Upload) Extracted() string {
	res, ok := u.Result()
	if !ok || res == nil {
		return ""
	}
	return res.ExtractedText
}

// UseAsContext stores the last extraction as the shared context text
func (u *Upload) UseAsContext() error {
	text := u.Extracted()
	if strings.TrimSpace(text) == "" {
		return missingInput("extracted text")
	}
	if u.ctx == nil {
		return fmt.Errorf("no context store")
	}
	return u.ctx.SetContextText(text)
}

// Save stores the extracted text as "upload"
func (u *Upload) Save(ctx context.Context) (string, error) {
	return u.saver.save(ctx, u.Extracted())
}

// History lists files saved on the backend
type History struct {
	backend Backend
	Cycle[*api.History]
}

// NewHistory creates a history panel
func NewHistory(b Backend) *History {
	return &History{backend: b}
}

// Load fetches the history
func (h *History) Load(ctx context.Context) (*api.History, error) {
	return h.Submit(ctx, nil, func(ctx context.Context) (*api.History, error) {
		return h.backend.History(ctx)
	})
}

func nonEmpty(value, field string) func() error {
	return func() error {
		if strings.TrimSpace(value) == "" {
			return missingInput(field)
		}
		return nil
	}
}
