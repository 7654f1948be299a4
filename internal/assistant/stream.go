package assistant

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// ChunkKind classifies a stream element.
type ChunkKind int

const (
	ChunkText ChunkKind = iota
	ChunkEnd
	ChunkError
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkText:
		return "text"
	case ChunkEnd:
		return "end"
	case ChunkError:
		return "error"
	default:
		return fmt.Sprintf("ChunkKind(%d)", int(k))
	}
}

// Chunk is one element of a generated answer. End and Error are terminal.
type Chunk struct {
	Kind ChunkKind
	Text string
	Err  error
}

// Source produces answer fragments. It must stop when ctx is done or when
// yield returns false.
type Source func(ctx context.Context) iter.Seq2[string, error]

// Stream is a pull-based, single-subscriber sequence of chunks that always
// ends with exactly one End or Error chunk.
type Stream struct {
	next   func() (string, error, bool)
	stop   func()
	cancel context.CancelFunc
	done   bool
}

// NewStream starts pulling from src under a cancellable child of ctx.
func NewStream(ctx context.Context, src Source) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	next, stop := iter.Pull2(src(ctx))
	return &Stream{next: next, stop: stop, cancel: cancel}
}

// Failed returns a stream holding a single error chunk.
func Failed(ctx context.Context, err error) *Stream {
	return NewStream(ctx, func(context.Context) iter.Seq2[string, error] {
		return func(yield func(string, error) bool) { yield("", err) }
	})
}

// Next returns the next chunk, or false once the terminal chunk was delivered.
func (s *Stream) Next() (Chunk, bool) {
	if s.done {
		return Chunk{}, false
	}
	text, err, ok := s.next()
	switch {
	case !ok:
		s.Close()
		return Chunk{Kind: ChunkEnd}, true
	case err != nil:
		s.Close()
		return Chunk{Kind: ChunkError, Text: errorText(err), Err: err}, true
	}
	return Chunk{Kind: ChunkText, Text: text}, true
}

// All adapts the stream for range loops. Breaking out of the loop closes it.
func (s *Stream) All() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		defer s.Close()
		for {
			c, ok := s.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// Close cancels generation and releases the producer. It is idempotent.
func (s *Stream) Close() {
	s.done = true
	s.cancel()
	s.stop()
}

// Collect drains the stream. The returned text includes the rendered error
// chunk, if any, and err reports the underlying failure.
func (s *Stream) Collect() (string, error) {
	var (
		b   strings.Builder
		err error
	)
	for c := range s.All() {
		b.WriteString(c.Text)
		if c.Kind == ChunkError {
			err = c.Err
		}
	}
	return b.String(), err
}

func errorText(err error) string {
	var oe *domain.OpError
	if errors.As(err, &oe) && oe.Kind == domain.KindUnavailable {
		return fmt.Sprintf("AI features disabled: %v.", oe.Err)
	}
	return fmt.Sprintf("\n\n[An error occurred while contacting the AI: %v]", err)
}
