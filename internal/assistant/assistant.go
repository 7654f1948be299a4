// Package assistant implements the AI research features: context-aware chat,
// case law lookup and statutory provision notes.
package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// Assistant composes prompts and delegates generation.
type Assistant struct {
	gen             Generator
	maxContextChars int
	logger          *zap.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assistant) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMaxContextChars bounds the file context sent with chat prompts.
func WithMaxContextChars(n int) Option {
	return func(a *Assistant) {
		if n > 0 {
			a.maxContextChars = n
		}
	}
}

// New returns an Assistant backed by gen.
func New(gen Generator, opts ...Option) *Assistant {
	a := &Assistant{gen: gen, maxContextChars: domain.DefaultMaxContextChars, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Chat records prompt in the history and streams the answer using the loaded
// files as context. Call Finish with the collected answer to append it.
func (a *Assistant) Chat(ctx context.Context, state ChatState, prompt string) (ChatState, *Stream) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return state, Failed(ctx, domain.Invalid("assistant.chat", "prompt is empty"))
	}
	next := state.WithMessage(Message{Role: RoleUser, Content: prompt})
	contextText := state.ContextText(a.maxContextChars)
	a.logger.Debug("chat prompt",
		zap.Int("history", len(next.History)),
		zap.Int("files", len(state.Files)),
		zap.Int("context_chars", len(contextText)))
	return next, a.gen.Generate(ctx, prompt, contextText)
}

// Finish appends the model's answer to state.
func Finish(state ChatState, answer string) ChatState {
	return state.WithMessage(Message{Role: RoleModel, Content: answer})
}

// CaseSearch asks for information on a case. year may be empty.
func (a *Assistant) CaseSearch(ctx context.Context, name, year string) *Stream {
	if strings.TrimSpace(name) == "" {
		return Failed(ctx, domain.Invalid("assistant.case", "case name is required"))
	}
	a.logger.Debug("case search", zap.String("name", name), zap.String("year", year))
	return a.gen.Generate(ctx, CasePrompt(name, year), "")
}

// ProvisionLookup asks for structured notes on a legal provision.
func (a *Assistant) ProvisionLookup(ctx context.Context, term string) *Stream {
	if strings.TrimSpace(term) == "" {
		return Failed(ctx, domain.Invalid("assistant.provision", "search term is required"))
	}
	a.logger.Debug("provision lookup", zap.String("term", term))
	return a.gen.Generate(ctx, ProvisionPrompt(term), "")
}
