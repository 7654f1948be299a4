package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lexdesk/legal-assistant/internal/deadline"
	"github.com/lexdesk/legal-assistant/internal/domain"
)

type deadlineView struct {
	domain.Deadline
	DaysRemaining int `json:"days_remaining"`
}

func (s *Server) views(ds []domain.Deadline) []deadlineView {
	out := make([]deadlineView, 0, len(ds))
	for _, d := range ds {
		out = append(out, deadlineView{Deadline: d, DaysRemaining: s.tracker.DaysRemaining(d)})
	}
	return out
}

func (s *Server) listDeadlines(c *gin.Context) {
	var f deadline.Filter
	for _, p := range c.QueryArray("priority") {
		parsed, err := domain.ParsePriority(p)
		if err != nil {
			s.fail(c, err)
			return
		}
		f.Priorities = append(f.Priorities, parsed)
	}
	for _, cat := range c.QueryArray("category") {
		parsed, err := domain.ParseCategory(cat)
		if err != nil {
			s.fail(c, err)
			return
		}
		f.Categories = append(f.Categories, parsed)
	}
	order, err := deadline.ParseSortOrder(c.Query("sort"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deadlines": s.views(s.tracker.List(f, order))})
}

func (s *Server) createDeadline(c *gin.Context) {
	var d domain.Deadline
	if err := c.ShouldBindJSON(&d); err != nil {
		s.fail(c, bindError("deadline.add", err))
		return
	}
	added, err := s.tracker.Add(d)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, deadlineView{Deadline: added, DaysRemaining: s.tracker.DaysRemaining(added)})
}

func (s *Server) getDeadline(c *gin.Context) {
	id, err := deadlineID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	d, err := s.tracker.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deadlineView{Deadline: d, DaysRemaining: s.tracker.DaysRemaining(d)})
}

func (s *Server) updateDeadline(c *gin.Context) {
	id, err := deadlineID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var d domain.Deadline
	if err := c.ShouldBindJSON(&d); err != nil {
		s.fail(c, bindError("deadline.update", err))
		return
	}
	d.ID = id
	updated, err := s.tracker.Update(d)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deadlineView{Deadline: updated, DaysRemaining: s.tracker.DaysRemaining(updated)})
}

func (s *Server) deleteDeadline(c *gin.Context) {
	id, err := deadlineID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.tracker.Delete(id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) upcomingDeadlines(c *gin.Context) {
	days := s.upcoming
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.fail(c, domain.Invalid("deadline.upcoming", "days must be a non-negative integer, got %q", raw))
			return
		}
		days = n
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "deadlines": s.views(s.tracker.Upcoming(days))})
}

// exportDeadlines streams every deadline, date ascending, as an attachment.
func (s *Server) exportDeadlines(c *gin.Context) {
	format, err := deadline.ParseExportFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		s.fail(c, err)
		return
	}
	var buf bytes.Buffer
	ds := s.tracker.List(deadline.Filter{}, deadline.SortDateAsc)
	if err := deadline.Export(&buf, format, ds, s.tracker.Now()); err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+format.Filename())
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func deadlineID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, domain.Invalid("deadline.id", "invalid deadline id %q", c.Param("id"))
	}
	return id, nil
}
