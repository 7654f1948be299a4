// Package deadline tracks legal deadlines persisted in a JSON file.
package deadline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// Store persists the full deadline list.
type Store interface {
	Load() ([]domain.Deadline, error)
	Save([]domain.Deadline) error
}

// JSONStore keeps deadlines in a single indented JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store backed by path. The file is created on first save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file path.
func (s *JSONStore) Path() string { return s.path }

// record mirrors domain.Deadline on disk. Older files may omit category.
type record struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	Priority    domain.Priority  `json:"priority"`
	Category    *domain.Category `json:"category,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// Load reads every deadline. A missing or empty file is an empty list.
func (s *JSONStore) Load() ([]domain.Deadline, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Persistence("deadline.load", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, domain.Persistence("deadline.load", s.path, fmt.Errorf("decode: %w", err))
	}
	out := make([]domain.Deadline, 0, len(recs))
	for _, r := range recs {
		category := domain.CategoryOther
		if r.Category != nil {
			category = *r.Category
		}
		out = append(out, domain.Deadline{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Date:        r.Date,
			Priority:    r.Priority,
			Category:    category,
			Notes:       r.Notes,
		})
	}
	return out, nil
}

// Save replaces the file atomically by writing a sibling temp file first.
func (s *JSONStore) Save(deadlines []domain.Deadline) error {
	if deadlines == nil {
		deadlines = []domain.Deadline{}
	}
	data, err := json.MarshalIndent(deadlines, "", "    ")
	if err != nil {
		return domain.Persistence("deadline.save", s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return domain.Persistence("deadline.save", s.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.Persistence("deadline.save", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.Persistence("deadline.save", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return domain.Persistence("deadline.save", s.path, err)
	}
	return nil
}
