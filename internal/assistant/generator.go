package assistant

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// Generator turns a prompt plus optional context into a stream of text.
// Failures are delivered as an error chunk, never as a return value.
type Generator interface {
	Generate(ctx context.Context, prompt, contextText string) *Stream
}

// ComposePrompt wraps prompt with the context block when context is present.
func ComposePrompt(prompt, contextText string) string {
	if contextText == "" {
		return prompt
	}
	return "Use the following context if relevant:\n--- CONTEXT START ---\n" + contextText +
		"\n--- CONTEXT END ---\n\nBased on the context (if relevant) and your general knowledge, answer the following question:\n" + prompt
}

// GenAIGenerator streams answers from the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a client for the given key and model.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, domain.Unavailable("assistant.genai", errors.New("API key is required"))
	}
	if model == "" {
		model = domain.DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, domain.Unavailable("assistant.genai", fmt.Errorf("failed to create GenAI client: %w", err))
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

// Model reports the configured model name.
func (g *GenAIGenerator) Model() string { return g.model }

func (g *GenAIGenerator) Generate(ctx context.Context, prompt, contextText string) *Stream {
	full := ComposePrompt(prompt, contextText)
	return NewStream(ctx, func(ctx context.Context) iter.Seq2[string, error] {
		return func(yield func(string, error) bool) {
			for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(full), nil) {
				if err != nil {
					yield("", err)
					return
				}
				if text := resp.Text(); text != "" {
					if !yield(text, nil) {
						return
					}
				}
			}
		}
	})
}

// disabled stands in when no API key is configured.
type disabled struct{ reason error }

// Disabled returns a generator whose every answer is a single
// "AI features disabled" error chunk.
func Disabled(reason string) Generator {
	if reason == "" {
		reason = "Gemini model not initialized or API key missing"
	}
	return disabled{reason: domain.Unavailable("assistant.generate", errors.New(reason))}
}

func (d disabled) Generate(ctx context.Context, _, _ string) *Stream {
	return Failed(ctx, d.reason)
}

// FromConfig builds the Gemini generator, or a disabled one when no key is set
// or the client cannot be created.
func FromConfig(ctx context.Context, cfg domain.AssistantConfig) Generator {
	if cfg.APIKey == "" {
		return Disabled("")
	}
	g, err := NewGenAIGenerator(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) {
			return Disabled(oe.Err.Error())
		}
		return Disabled(err.Error())
	}
	return g
}
