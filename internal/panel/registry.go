package panel

import (
	"net/http"

	"github.com/iksnae/studymind/internal"
)

// Kind identifies a backend operation offered by some panel
type Kind string

const (
	KindSummarize     Kind = "summarize"
	KindQuizMe        Kind = "quiz"
	KindFlashcards    Kind = "flashcards"
	KindExplain       Kind = "explain"
	KindChat          Kind = "chat"
	KindContent       Kind = "content"
	KindSlides        Kind = "slides"
	KindAdjust        Kind = "adjust"
	KindSave          Kind = "save"
	KindQuizGenerator Kind = "quiz-generator"
	KindGrade         Kind = "grade"
	KindAdmin         Kind = "admin"
	KindIdeas         Kind = "ideas"
	KindHelp          Kind = "help"
	KindUpload        Kind = "upload"
	KindHistory       Kind = "history"
)

// Entry describes how an operation reaches the backend
type Entry struct {
	Kind          Kind
	Label         string
	Description   string
	Method        string
	Endpoint      string
	ResponseField string
}

// Registry is every operation in display order
var Registry = []Entry{
	{KindSummarize, internal.TaskSummarize.Label(), internal.TaskSummarize.Description(), http.MethodPost, "/generate", "output"},
	{KindQuizMe, internal.TaskQuiz.Label(), internal.TaskQuiz.Description(), http.MethodPost, "/generate", "output"},
	{KindFlashcards, internal.TaskFlashcards.Label(), internal.TaskFlashcards.Description(), http.MethodPost, "/generate", "output"},
	{KindExplain, internal.TaskExplain.Label(), internal.TaskExplain.Description(), http.MethodPost, "/generate", "output"},
	{KindChat, "Chat", "Talk with your study companion", http.MethodPost, "/chat", "response"},
	{KindContent, "Content", "Generate lecture material for a topic", http.MethodPost, "/content/create", "content"},
	{KindSlides, "Slides", "Turn lecture material into slides", http.MethodPost, "/content/slide", "slides"},
	{KindAdjust, "Adjust", "Simplify or expand material", http.MethodPost, "/content/adjust", "content"},
	{KindSave, "Save", "Save material on the backend", http.MethodPost, "/content/save", "saved_path"},
	{KindQuizGenerator, "Quiz Generator", "Multiple-choice or short-answer quizzes", http.MethodPost, "/quiz", "quiz"},
	{KindGrade, "Grading", "Grade an answer or code with feedback", http.MethodPost, "/grade", "feedback"},
	{KindAdmin, "Admin", "Reminder emails, course summaries and rubrics", http.MethodPost, "/admin/template", "output"},
	{KindIdeas, "Project Ideas", "Project ideas for a topic and level", http.MethodPost, "/ideas", "ideas"},
	{KindHelp, "Help", "Ask how to use StudyMind", http.MethodPost, "/help", "answer"},
	{KindUpload, "Upload", "Extract text from a document", http.MethodPost, "/upload", "extracted_text"},
	{KindHistory, "History", "Files saved on the backend", http.MethodGet, "/history", "items"},
}

// Lookup finds the entry for kind
func Lookup(kind Kind) (Entry, bool) {
	for _, e := range Registry {
		if e.Kind == kind {
			return e, true
		}
	}
	return Entry{}, false
}

// TaskKind maps a generate task to its registry kind
func TaskKind(task internal.Task) Kind {
	return Kind(task)
}

// Endpoints returns the distinct method and path pairs, in registry order
func Endpoints() []Entry {
	seen := make(map[string]bool)
	var out []Entry
	for _, e := range Registry {
		key := e.Method + " " + e.Endpoint
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
