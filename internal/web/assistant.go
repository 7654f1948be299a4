package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lexdesk/legal-assistant/internal/assistant"
	"github.com/lexdesk/legal-assistant/internal/domain"
)

type chatRequest struct {
	State  assistant.ChatState `json:"state"`
	Prompt string              `json:"prompt"`
}

type caseRequest struct {
	Name string `json:"name"`
	Year string `json:"year"`
}

type provisionRequest struct {
	Term string `json:"term"`
}

// chat streams the answer as "chunk" events and finishes with a "done"
// event carrying the updated conversation.
func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError("assistant.chat", err))
		return
	}
	state, stream := s.assistant.Chat(c.Request.Context(), req.State, req.Prompt)
	answer, ok := s.streamEvents(c, stream)
	if !ok {
		return
	}
	state = assistant.Finish(state, answer)
	c.SSEvent("done", gin.H{"state": state})
	c.Writer.Flush()
}

func (s *Server) caseSearch(c *gin.Context) {
	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError("assistant.case", err))
		return
	}
	s.finishLookup(c, s.assistant.CaseSearch(c.Request.Context(), req.Name, req.Year))
}

func (s *Server) provisionLookup(c *gin.Context) {
	var req provisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError("assistant.provision", err))
		return
	}
	s.finishLookup(c, s.assistant.ProvisionLookup(c.Request.Context(), req.Term))
}

func (s *Server) finishLookup(c *gin.Context, stream *assistant.Stream) {
	answer, ok := s.streamEvents(c, stream)
	if !ok {
		return
	}
	c.SSEvent("done", gin.H{"text": answer})
	c.Writer.Flush()
}

// streamEvents relays stream as server-sent events and returns the full
// answer, including any rendered error text. An invalid-input failure on the
// first chunk is reported as a plain 400 instead, and ok is false.
func (s *Server) streamEvents(c *gin.Context, stream *assistant.Stream) (answer string, ok bool) {
	defer stream.Close()

	first, more := stream.Next()
	if !more {
		first = assistant.Chunk{Kind: assistant.ChunkEnd}
	}
	if first.Kind == assistant.ChunkError && domain.IsKind(first.Err, domain.KindInvalidInput) {
		s.fail(c, first.Err)
		return "", false
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	var b strings.Builder
	ctx := c.Request.Context()
	chunk := first
	for {
		b.WriteString(chunk.Text)
		switch chunk.Kind {
		case assistant.ChunkText:
			c.SSEvent("chunk", gin.H{"text": chunk.Text})
		case assistant.ChunkError:
			s.logger.Warn("assistant stream failed",
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.Error(chunk.Err))
			c.SSEvent("error", gin.H{"text": chunk.Text, "error": chunk.Err.Error()})
		}
		c.Writer.Flush()
		if chunk.Kind != assistant.ChunkText {
			break
		}
		if ctx.Err() != nil {
			return b.String(), false
		}
		if chunk, more = stream.Next(); !more {
			break
		}
	}
	return b.String(), true
}
