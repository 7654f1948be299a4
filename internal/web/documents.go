package web

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexdesk/legal-assistant/internal/diff"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/extract"
)

const defaultUnifiedContext = 3

type diffRequest struct {
	Left      string `json:"left" form:"left"`
	Right     string `json:"right" form:"right"`
	LeftName  string `json:"left_name" form:"left_name"`
	RightName string `json:"right_name" form:"right_name"`
	Mode      string `json:"mode" form:"mode"`
	Algorithm string `json:"algorithm" form:"algorithm"`
	Context   *int   `json:"context" form:"context"`
}

type diffResponse struct {
	*diff.Result
	Identical bool   `json:"identical"`
	HTML      string `json:"html"`
	Unified   string `json:"unified,omitempty"`
}

// diffDocuments compares two texts posted as JSON, or two uploaded files
// ("left" and "right") posted as multipart form data.
func (s *Server) diffDocuments(c *gin.Context) {
	var req diffRequest
	if c.ContentType() == "multipart/form-data" {
		if err := c.ShouldBind(&req); err != nil {
			s.fail(c, bindError("diff", err))
			return
		}
		left, err := formFile(c, "left")
		if err != nil {
			s.fail(c, err)
			return
		}
		right, err := formFile(c, "right")
		if err != nil {
			s.fail(c, err)
			return
		}
		req.LeftName, req.RightName = left.Name, right.Name
		if req.Left, req.Right, err = extract.ExtractPair(c.Request.Context(), left, right); err != nil {
			s.fail(c, err)
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError("diff", err))
		return
	}

	mode := diff.ModeLine
	if req.Mode != "" {
		m, err := diff.ParseMode(req.Mode)
		if err != nil {
			s.fail(c, domain.Invalid("diff", "%v", err))
			return
		}
		mode = m
	}
	algorithm, err := diff.ParseAlgorithm(req.Algorithm)
	if err != nil {
		s.fail(c, domain.Invalid("diff", "%v", err))
		return
	}

	res := diff.NewEngine(algorithm).Compare(req.Left, req.Right, mode)
	html, err := diff.HTML(res)
	if err != nil {
		s.fail(c, err)
		return
	}
	resp := diffResponse{Result: res, Identical: res.Identical(), HTML: string(html)}
	if mode == diff.ModeLine {
		context := defaultUnifiedContext
		if req.Context != nil && *req.Context >= 0 {
			context = *req.Context
		}
		leftName, rightName := nameOr(req.LeftName, "Document 1"), nameOr(req.RightName, "Document 2")
		if resp.Unified, err = diff.Unified(req.Left, req.Right, leftName, rightName, context); err != nil {
			s.fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// extractFile returns the text of the uploaded "file" so the page can hold
// it as assistant context.
func (s *Server) extractFile(c *gin.Context) {
	f, err := formFile(c, "file")
	if err != nil {
		s.fail(c, err)
		return
	}
	kind, err := domain.ResolveDocumentType(f.Mime, f.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	text, err := extract.ExtractFile(f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":       f.Name,
		"type":       kind.String(),
		"text":       text,
		"characters": len([]rune(text)),
	})
}

func formFile(c *gin.Context, field string) (extract.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return extract.File{}, domain.Invalid("upload", "missing file %q: %v", field, err)
	}
	data, err := readUpload(header)
	if err != nil {
		return extract.File{}, domain.Invalid("upload", "read %s: %v", header.Filename, err)
	}
	return extract.File{Name: header.Filename, Mime: header.Header.Get("Content-Type"), Data: data}, nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
