package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexdesk/legal-assistant/internal/citation"
	"github.com/lexdesk/legal-assistant/internal/domain"
)

type citationRequest struct {
	Type   string            `json:"type"`
	Style  string            `json:"style"`
	Fields map[string]string `json:"fields"`
}

type option struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func (s *Server) citationOptions(c *gin.Context) {
	types := make([]option, 0, len(domain.CitationTypes))
	for _, t := range domain.CitationTypes {
		types = append(types, option{Key: t.Key(), Name: t.String()})
	}
	styles := make([]string, 0, len(domain.CitationStyles))
	for _, st := range domain.CitationStyles {
		styles = append(styles, st.String())
	}
	c.JSON(http.StatusOK, gin.H{"types": types, "styles": styles})
}

func (s *Server) generateCitation(c *gin.Context) {
	var req citationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError("citation", err))
		return
	}
	t, err := domain.ParseCitationType(req.Type)
	if err != nil {
		s.fail(c, err)
		return
	}
	style, err := domain.ParseCitationStyle(req.Style)
	if err != nil {
		s.fail(c, err)
		return
	}
	text, err := citation.Generate(t, style, req.Fields, time.Now())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"citation": text, "type": t.String(), "style": style})
}
