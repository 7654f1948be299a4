package assistant

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeGenerator records the last request and replays chunks, optionally
// failing after them.
type fakeGenerator struct {
	chunks  []string
	failure error

	prompt  string
	context string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt, contextText string) *Stream {
	f.prompt, f.context = prompt, contextText
	return NewStream(ctx, func(ctx context.Context) iter.Seq2[string, error] {
		return func(yield func(string, error) bool) {
			for _, c := range f.chunks {
				if err := ctx.Err(); err != nil {
					yield("", err)
					return
				}
				if !yield(c, nil) {
					return
				}
			}
			if f.failure != nil {
				yield("", f.failure)
			}
		}
	})
}

func kinds(s *Stream) []ChunkKind {
	var out []ChunkKind
	for c := range s.All() {
		out = append(out, c.Kind)
	}
	return out
}

func TestStreamEndsWithSingleTerminal(t *testing.T) {
	g := &fakeGenerator{chunks: []string{"Hello", ", ", "world"}}
	s := g.Generate(context.Background(), "q", "")

	assert.Equal(t, []ChunkKind{ChunkText, ChunkText, ChunkText, ChunkEnd}, kinds(s))

	_, ok := s.Next()
	assert.False(t, ok, "stream must stay exhausted")
}

func TestStreamCollect(t *testing.T) {
	text, err := (&fakeGenerator{chunks: []string{"Article ", "21"}}).Generate(context.Background(), "q", "").Collect()
	require.NoError(t, err)
	assert.Equal(t, "Article 21", text)
}

func TestStreamErrorChunk(t *testing.T) {
	boom := errors.New("quota exceeded")
	g := &fakeGenerator{chunks: []string{"partial"}, failure: boom}

	text, err := g.Generate(context.Background(), "q", "").Collect()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "partial\n\n[An error occurred while contacting the AI: quota exceeded]", text)

	assert.Equal(t, []ChunkKind{ChunkText, ChunkError}, kinds(g.Generate(context.Background(), "q", "")))
}

func TestStreamCloseMidway(t *testing.T) {
	g := &fakeGenerator{chunks: []string{"a", "b", "c"}}
	s := g.Generate(context.Background(), "q", "")

	c, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "a", c.Text)

	s.Close()
	s.Close()
	_, ok = s.Next()
	assert.False(t, ok)
}

func TestStreamBreakClosesProducer(t *testing.T) {
	g := &fakeGenerator{chunks: []string{"a", "b", "c"}}
	for c := range g.Generate(context.Background(), "q", "").All() {
		assert.Equal(t, "a", c.Text)
		break
	}
}

func TestStreamHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	text, err := (&fakeGenerator{chunks: []string{"a"}}).Generate(ctx, "q", "").Collect()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, text, "An error occurred")
}

func TestDisabledGenerator(t *testing.T) {
	s := Disabled("").Generate(context.Background(), "q", "ctx")
	c, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, ChunkError, c.Kind)
	assert.Equal(t, "AI features disabled: Gemini model not initialized or API key missing.", c.Text)
	assert.True(t, domain.IsKind(c.Err, domain.KindUnavailable))

	_, ok = s.Next()
	assert.False(t, ok)

	_, isDisabled := FromConfig(context.Background(), domain.AssistantConfig{}).(disabled)
	assert.True(t, isDisabled)
}

func TestComposePrompt(t *testing.T) {
	assert.Equal(t, "What is bail?", ComposePrompt("What is bail?", ""))

	got := ComposePrompt("What is bail?", "CrPC text")
	assert.Equal(t, "Use the following context if relevant:\n--- CONTEXT START ---\nCrPC text\n--- CONTEXT END ---\n\n"+
		"Based on the context (if relevant) and your general knowledge, answer the following question:\nWhat is bail?", got)
}

func TestChatStateIsImmutable(t *testing.T) {
	base := ChatState{}.WithFile("a.txt", "alpha")
	withB := base.WithFile("b.txt", "beta")
	withMsg := withB.WithMessage(Message{Role: RoleUser, Content: "hi"})

	assert.Equal(t, []string{"a.txt"}, base.FileNames())
	assert.Equal(t, []string{"a.txt", "b.txt"}, withB.FileNames())
	assert.Empty(t, withB.History)
	assert.Len(t, withMsg.History, 1)

	without := withMsg.WithoutFile("a.txt")
	assert.Equal(t, []string{"b.txt"}, without.FileNames())
	assert.Equal(t, []string{"a.txt", "b.txt"}, withMsg.FileNames())

	cleared := withMsg.Clear()
	assert.Empty(t, cleared.History)
	assert.Empty(t, cleared.Files)
}

func TestContextText(t *testing.T) {
	assert.Equal(t, "", ChatState{}.ContextText(100))

	s := ChatState{}.WithFile("b.txt", "second").WithFile("a.txt", "first")
	want := "Context from Uploaded Files:\n" +
		"--- Start a.txt ---\nfirst...\n--- End a.txt ---\n\n" +
		"--- Start b.txt ---\nsecond...\n--- End b.txt ---\n\n---"
	assert.Equal(t, want, s.ContextText(0))

	// The first file's delimiters exhaust the budget, so b.txt is dropped
	// and a.txt is truncated to three characters.
	got := s.ContextText(3)
	assert.Contains(t, got, "--- Start a.txt ---\nfir...\n")
	assert.NotContains(t, got, "b.txt")
}

func TestContextTextCountsRunes(t *testing.T) {
	s := ChatState{}.WithFile("hi.txt", "नमस्ते दुनिया")
	got := s.ContextText(4)
	assert.Contains(t, got, "\nनमस्...\n")
}

func TestChatFlow(t *testing.T) {
	g := &fakeGenerator{chunks: []string{"Section 438 ", "covers anticipatory bail."}}
	a := New(g, WithMaxContextChars(1000))

	state := ChatState{}.WithFile("fir.txt", "FIR details")
	next, s := a.Chat(context.Background(), state, "  Can I get bail?  ")
	answer, err := s.Collect()
	require.NoError(t, err)
	next = Finish(next, answer)

	want := []Message{
		{Role: RoleUser, Content: "Can I get bail?"},
		{Role: RoleModel, Content: "Section 438 covers anticipatory bail."},
	}
	if diff := cmp.Diff(want, next.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, state.History, "input state is untouched")
	assert.Equal(t, "Can I get bail?", g.prompt)
	assert.True(t, strings.HasPrefix(g.context, "Context from Uploaded Files:"))
	assert.Contains(t, g.context, "FIR details")
}

func TestChatRejectsEmptyPrompt(t *testing.T) {
	a := New(&fakeGenerator{})
	state, s := a.Chat(context.Background(), ChatState{}, "   ")
	_, err := s.Collect()
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	assert.Empty(t, state.History)
}

func TestCaseAndProvisionPrompts(t *testing.T) {
	assert.Equal(t,
		"Please provide information on the Indian case law titled 'Maneka Gandhi v. Union of India' from the year 1978. "+
			"Include a summary, key judgment points, related case with relevant citations and legal interpretations if available.",
		CasePrompt("Maneka Gandhi v. Union of India", "1978"))
	assert.Contains(t, CasePrompt("Vishaka", ""), "(if year is unknown, provide the most relevant match).")

	p := ProvisionPrompt("anticipatory bail")
	assert.True(t, strings.HasPrefix(p, "Regarding the legal provision for 'anticipatory bail' under Indian law:"))
	for _, heading := range []string{"### **Act and Section:**", "### **Detailed Notes:**", "### **Key Aspects:**", "### **Relevant Case Laws:**"} {
		assert.Contains(t, p, heading)
	}

	g := &fakeGenerator{chunks: []string{"ok"}}
	a := New(g)
	_, err := a.CaseSearch(context.Background(), "Vishaka", "").Collect()
	require.NoError(t, err)
	assert.Empty(t, g.context)
	assert.Contains(t, g.prompt, "'Vishaka'")

	_, err = a.ProvisionLookup(context.Background(), "Section 80C").Collect()
	require.NoError(t, err)
	assert.Contains(t, g.prompt, "'Section 80C'")

	_, err = a.ProvisionLookup(context.Background(), " ").Collect()
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}
