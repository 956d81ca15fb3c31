// Package leaderboard holds the high score table shared by the HTTP service
// and the client's offline fallback.
package leaderboard

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/automoto/gradius/shared/tuning"
)

// DateLayout is the calendar date format of Entry.Date.
const DateLayout = "2006-01-02"

// Entry is one row of the table.
type Entry struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// DefaultEntries is the table a fresh service starts with.
func DefaultEntries() []Entry {
	return []Entry{
		{ID: 1, Name: "ACE", Score: 15000, Date: "2023-07-15"},
		{ID: 2, Name: "NOVA", Score: 12500, Date: "2023-07-14"},
		{ID: 3, Name: "VIPER", Score: 10000, Date: "2023-07-13"},
		{ID: 4, Name: "ECHO", Score: 8500, Date: "2023-07-12"},
		{ID: 5, Name: "PHANTOM", Score: 7000, Date: "2023-07-11"},
	}
}

// Position returns the index a score would take: before the first strictly
// lower score, or at the end.
func Position(score int, entries []Entry) int {
	for i, e := range entries {
		if score > e.Score {
			return i
		}
	}
	return len(entries)
}

// Insert returns entries with e placed at its position, truncated to limit.
// The second result reports whether e made the cut.
func Insert(entries []Entry, e Entry, limit int) ([]Entry, bool) {
	pos := Position(e.Score, entries)
	if pos >= limit {
		return slices.Clone(entries[:min(len(entries), limit)]), false
	}
	out := slices.Insert(slices.Clone(entries), pos, e)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, true
}

// Qualifies reports whether score would enter a table of limit rows.
func Qualifies(score int, entries []Entry, limit int) bool {
	return score > 0 && Position(score, entries) < limit
}

// FormatScore renders n with thousands separators.
func FormatScore(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Board is a concurrency-safe top-N table.
type Board struct {
	mu      sync.RWMutex
	entries []Entry
	limit   int
	lastID  int64
	now     func() time.Time
}

// NewBoard returns a board seeded with entries, sorted and trimmed to the
// standard size.
func NewBoard(seed []Entry) *Board {
	b := &Board{limit: tuning.MaxHighScores, now: time.Now}
	sorted := slices.Clone(seed)
	slices.SortStableFunc(sorted, func(x, y Entry) int { return y.Score - x.Score })
	if len(sorted) > b.limit {
		sorted = sorted[:b.limit]
	}
	b.entries = sorted
	for _, e := range sorted {
		b.lastID = max(b.lastID, e.ID)
	}
	return b
}

// List returns a copy of the table, best first.
func (b *Board) List() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.entries)
}

// Submit records a validated score. The returned entry is the one created
// for the submission whether or not it made the table.
func (b *Board) Submit(s Submission) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	id := max(now.UnixMilli(), b.lastID+1)
	b.lastID = id
	e := Entry{ID: id, Name: s.Name, Score: s.Score, Date: now.Format(DateLayout)}

	var placed bool
	b.entries, placed = Insert(b.entries, e, b.limit)
	return e, placed
}

// Len returns the number of rows.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
