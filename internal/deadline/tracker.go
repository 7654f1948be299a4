package deadline

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/pkg/dateutil"
)

// DefaultUpcomingDays is the look-ahead window for Upcoming.
const DefaultUpcomingDays = 7

// SortOrder orders listed deadlines.
type SortOrder int

const (
	SortDateAsc SortOrder = iota
	SortDateDesc
	SortPriorityHighLow
	SortPriorityLowHigh
)

func (o SortOrder) String() string {
	switch o {
	case SortDateAsc:
		return "date-asc"
	case SortDateDesc:
		return "date-desc"
	case SortPriorityHighLow:
		return "priority-desc"
	case SortPriorityLowHigh:
		return "priority-asc"
	default:
		return fmt.Sprintf("SortOrder(%d)", int(o))
	}
}

// ParseSortOrder accepts the short keys and the long labels
// ("Date (Ascending)", "Priority (High to Low)", ...). Empty means date-asc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "date", "date-asc", "date (ascending)":
		return SortDateAsc, nil
	case "date-desc", "date (descending)":
		return SortDateDesc, nil
	case "priority", "priority-desc", "priority (high to low)":
		return SortPriorityHighLow, nil
	case "priority-asc", "priority (low to high)":
		return SortPriorityLowHigh, nil
	}
	return 0, domain.Invalid("deadline.sort", "unknown sort order %q", s)
}

// Filter narrows List. Empty slices match everything.
type Filter struct {
	Priorities []domain.Priority
	Categories []domain.Category
}

func (f Filter) match(d domain.Deadline) bool {
	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, d.Priority) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, d.Category) {
		return false
	}
	return true
}

// Tracker is the in-memory view of a Store. It is safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	store  Store
	items  []domain.Deadline
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used for day counts.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTracker loads every deadline from store.
func NewTracker(store Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{store: store, now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	items, err := store.Load()
	if err != nil {
		return nil, err
	}
	t.items = items
	return t, nil
}

// Add assigns the next free ID, stores d and returns the stored record.
func (t *Tracker) Add(d domain.Deadline) (domain.Deadline, error) {
	d = normalize(d)
	if err := d.Validate(); err != nil {
		return domain.Deadline{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	d.ID = t.nextID()
	t.items = append(t.items, d)
	t.logger.Info("deadline added", zap.Int("id", d.ID), zap.String("date", d.Date))
	return d, t.persist("deadline.add")
}

// Update replaces the deadline with the same ID.
func (t *Tracker) Update(d domain.Deadline) (domain.Deadline, error) {
	d = normalize(d)
	if err := d.Validate(); err != nil {
		return domain.Deadline{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(d.ID)
	if i < 0 {
		return domain.Deadline{}, domain.NotFound("deadline.update", "deadline %d not found", d.ID)
	}
	t.items[i] = d
	t.logger.Info("deadline updated", zap.Int("id", d.ID))
	return d, t.persist("deadline.update")
}

// Delete removes the deadline with the given ID.
func (t *Tracker) Delete(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return domain.NotFound("deadline.delete", "deadline %d not found", id)
	}
	t.items = slices.Delete(t.items, i, i+1)
	t.logger.Info("deadline deleted", zap.Int("id", id))
	return t.persist("deadline.delete")
}

// Get returns the deadline with the given ID.
func (t *Tracker) Get(id int) (domain.Deadline, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return domain.Deadline{}, domain.NotFound("deadline.get", "deadline %d not found", id)
	}
	return t.items[i], nil
}

// List returns matching deadlines in the requested order.
func (t *Tracker) List(f Filter, order SortOrder) []domain.Deadline {
	t.mu.Lock()
	out := make([]domain.Deadline, 0, len(t.items))
	for _, d := range t.items {
		if f.match(d) {
			out = append(out, d)
		}
	}
	t.mu.Unlock()

	Sort(out, order)
	return out
}

// Sort orders deadlines in place. Ties keep their relative order.
func Sort(ds []domain.Deadline, order SortOrder) {
	switch order {
	case SortDateDesc:
		slices.SortStableFunc(ds, func(a, b domain.Deadline) int { return strings.Compare(b.Date, a.Date) })
	case SortPriorityHighLow:
		slices.SortStableFunc(ds, func(a, b domain.Deadline) int { return int(a.Priority) - int(b.Priority) })
	case SortPriorityLowHigh:
		slices.SortStableFunc(ds, func(a, b domain.Deadline) int { return int(b.Priority) - int(a.Priority) })
	default:
		slices.SortStableFunc(ds, func(a, b domain.Deadline) int { return strings.Compare(a.Date, b.Date) })
	}
}

// Between returns deadlines dated from start to end inclusive, earliest first.
func (t *Tracker) Between(start, end time.Time) []domain.Deadline {
	t.mu.Lock()
	var out []domain.Deadline
	for _, d := range t.items {
		due, err := d.Due()
		if err == nil && dateutil.InRange(due, start, end) {
			out = append(out, d)
		}
	}
	t.mu.Unlock()

	Sort(out, SortDateAsc)
	return out
}

// Upcoming returns deadlines due today or within the next days, earliest
// first. A non-positive window uses DefaultUpcomingDays.
func (t *Tracker) Upcoming(days int) []domain.Deadline {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	today := t.now()
	return t.Between(today, today.AddDate(0, 0, days))
}

// DaysRemaining counts calendar days from today to d's date. Overdue
// deadlines are negative.
func (t *Tracker) DaysRemaining(d domain.Deadline) int {
	due, err := d.Due()
	if err != nil {
		return 0
	}
	return dateutil.DaysBetween(t.now(), due)
}

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time { return t.now() }

func (t *Tracker) nextID() int {
	id := 0
	for _, d := range t.items {
		id = max(id, d.ID)
	}
	return id + 1
}

func (t *Tracker) indexOf(id int) int {
	return slices.IndexFunc(t.items, func(d domain.Deadline) bool { return d.ID == id })
}

// persist saves the current list. The in-memory change is kept on failure.
func (t *Tracker) persist(op string) error {
	if err := t.store.Save(slices.Clone(t.items)); err != nil {
		t.logger.Error("deadline save failed", zap.String("op", op), zap.Error(err))
		if domain.IsKind(err, domain.KindPersistence) {
			return err
		}
		return domain.Persistence(op, "", err)
	}
	return nil
}

func normalize(d domain.Deadline) domain.Deadline {
	d.Title = strings.TrimSpace(d.Title)
	d.Date = strings.TrimSpace(d.Date)
	return d
}
