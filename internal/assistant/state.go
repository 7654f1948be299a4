package assistant

import (
	"maps"
	"slices"
	"strings"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatState is the whole conversation: history plus the text of every file
// loaded as context. Methods never mutate the receiver.
type ChatState struct {
	History []Message         `json:"history"`
	Files   map[string]string `json:"files"`
}

// WithFile returns a copy with name set to text, replacing any earlier upload.
func (s ChatState) WithFile(name, text string) ChatState {
	files := maps.Clone(s.Files)
	if files == nil {
		files = make(map[string]string, 1)
	}
	files[name] = text
	return ChatState{History: slices.Clone(s.History), Files: files}
}

// WithoutFile returns a copy without name.
func (s ChatState) WithoutFile(name string) ChatState {
	files := maps.Clone(s.Files)
	delete(files, name)
	return ChatState{History: slices.Clone(s.History), Files: files}
}

// WithMessage returns a copy with m appended to the history.
func (s ChatState) WithMessage(m Message) ChatState {
	history := make([]Message, len(s.History), len(s.History)+1)
	copy(history, s.History)
	return ChatState{History: append(history, m), Files: maps.Clone(s.Files)}
}

// Clear drops the history and every file.
func (s ChatState) Clear() ChatState {
	return ChatState{}
}

// FileNames lists loaded files in the order they are added to the context.
func (s ChatState) FileNames() []string {
	return slices.Sorted(maps.Keys(s.Files))
}

// ContextText combines the loaded files into one context block of at most
// roughly maxChars characters. Files are taken in name order and the budget
// also counts the per-file delimiters. A non-positive maxChars uses the
// default budget.
func (s ChatState) ContextText(maxChars int) string {
	if len(s.Files) == 0 {
		return ""
	}
	if maxChars <= 0 {
		maxChars = domain.DefaultMaxContextChars
	}
	var b strings.Builder
	b.WriteString("Context from Uploaded Files:\n")
	total := 0
	for _, name := range s.FileNames() {
		text := []rune(s.Files[name])
		preview := min(len(text), maxChars-total)
		if preview <= 0 {
			break
		}
		b.WriteString("--- Start " + name + " ---\n")
		b.WriteString(string(text[:preview]))
		b.WriteString("...\n--- End " + name + " ---\n\n")
		total += preview + len([]rune("--- Start "+name+" ---\n...\n--- End "+name+" ---\n\n"))
	}
	b.WriteString("---\n")
	return strings.TrimSpace(b.String())
}
