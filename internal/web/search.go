package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/search"
	"github.com/lexdesk/legal-assistant/pkg/dateutil"
)

// searchCases reads q, jurisdiction, domain, from, to (YYYY-MM-DD),
// citation, judge, sort and limit from the query string.
func (s *Server) searchCases(c *gin.Context) {
	q := search.Query{
		Text:          c.Query("q"),
		Jurisdictions: c.QueryArray("jurisdiction"),
		Domains:       c.QueryArray("domain"),
		Citation:      c.Query("citation"),
		Judge:         c.Query("judge"),
	}
	var err error
	if q.From, err = queryDate(c, "from"); err != nil {
		s.fail(c, err)
		return
	}
	if q.To, err = queryDate(c, "to"); err != nil {
		s.fail(c, err)
		return
	}
	if q.Sort, err = search.ParseSortOrder(c.Query("sort")); err != nil {
		s.fail(c, err)
		return
	}
	if raw := c.Query("limit"); raw != "" {
		if q.Limit, err = strconv.Atoi(raw); err != nil || q.Limit < 0 {
			s.fail(c, domain.Invalid("search.limit", "limit must be a non-negative integer, got %q", raw))
			return
		}
	}

	results := s.catalogue.Search(q)
	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"analytics": search.Analyze(results),
	})
}

func (s *Server) searchOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"jurisdictions": search.Jurisdictions,
		"domains":       search.LegalDomains,
		"sorts":         []string{search.SortRelevance.String(), search.SortNewest.String(), search.SortOldest.String()},
	})
}

func queryDate(c *gin.Context, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := dateutil.ParseISO(raw)
	if err != nil {
		return time.Time{}, domain.Invalid("search."+key, "%s must be YYYY-MM-DD, got %q", key, raw)
	}
	return t, nil
}
