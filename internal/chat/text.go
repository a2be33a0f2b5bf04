package chat

import (
	"fmt"
	"strings"

	"github.com/iksnae/studymind/internal/api"
)

// WelcomeText opens every new conversation
const WelcomeText = "Hello! I'm StudyMind AI, your intelligent study companion. ✨ Ask me anything, share study materials, or upload files (PDF, TXT) and I'll help you learn! What would you like to study today?"

// DefaultFileQuestion is asked when a file is sent without a question
const DefaultFileQuestion = "Please analyze this file and provide a comprehensive summary of its content, including key topics, main concepts, and important points."

// ConnectionErrorText is the assistant message shown when a chat turn fails
func ConnectionErrorText(err error) string {
	return fmt.Sprintf("🔌 Error: %s. Please check your connection and try again!", api.Reason(err))
}

// FilePrompt frames extracted file text and the user's question for the chat endpoint
func FilePrompt(filename, extracted, question string) string {
	if strings.TrimSpace(question) == "" {
		question = DefaultFileQuestion
	}
	return fmt.Sprintf("File: %s\n\nExtracted content:\n%s\n\nUser question: %s", filename, extracted, question)
}

func extractionFailedText(filename string) string {
	return fmt.Sprintf(`⚠️ **Text Extraction Failed**

I couldn't extract text from "%s".

**Possible reasons:**
- The PDF contains only images/scanned content (requires OCR)
- The PDF is encrypted or password-protected
- The PDF has an unusual structure

**Solutions:**
- Try converting the PDF to text first
- Use a PDF with selectable text
- Check if the PDF opens correctly in a PDF reader`, filename)
}
