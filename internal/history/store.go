// Package history implements the persistent recency store for argument
// values. Values are keyed by (command, argument) and ordered by the time
// they were last accepted, so completion can offer most-recent-first
// suggestions across process restarts.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"slashline/internal/logger"
)

// Store persists accepted argument values to a per-application JSON file.
// The on-disk layout maps command -> argument -> value -> last-accepted unix
// seconds; re-adding a value updates its timestamp, which moves it to the
// front of the recency order without duplicating it.
type Store struct {
	path string
	now  func() time.Time
	data map[string]map[string]map[string]float64
}

// Option configures a Store.
type Option func(*Store)

// WithBaseDir overrides the directory holding the application dot-directory.
// The default is the user home directory.
func WithBaseDir(dir string) Option {
	return func(s *Store) {
		s.path = filepath.Join(dir, "history.json")
	}
}

// WithClock overrides the timestamp source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore opens (or creates) the history store for the given application
// identity. A missing or corrupt persisted file degrades to an empty store;
// it never fails startup.
func NewStore(appID string, opts ...Option) *Store {
	s := &Store{
		now:  time.Now,
		data: make(map[string]map[string]map[string]float64),
	}
	if home, err := os.UserHomeDir(); err == nil {
		s.path = filepath.Join(home, "."+appID, "history.json")
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	if s.path == "" {
		return
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		logger.Debug("History file unreadable, starting empty", "path", s.path, "error", err)
		s.data = make(map[string]map[string]map[string]float64)
	}
}

func (s *Store) save() {
	if s.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		logger.Warn("Could not create history directory", "path", s.path, "error", err)
		return
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		logger.Warn("Could not encode history", "error", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		logger.Warn("Could not write history file", "path", s.path, "error", err)
	}
}

// Add records an accepted value for the (command, argument) pair and
// persists the store. Re-adding an existing value refreshes its timestamp.
func (s *Store) Add(command, arg, value string) {
	args, ok := s.data[command]
	if !ok {
		args = make(map[string]map[string]float64)
		s.data[command] = args
	}
	values, ok := args[arg]
	if !ok {
		values = make(map[string]float64)
		args[arg] = values
	}
	values[value] = float64(s.now().UnixNano()) / float64(time.Second)
	s.save()
}

// Get returns up to limit values for the (command, argument) pair, most
// recent first. Equal timestamps order lexicographically so results stay
// deterministic.
func (s *Store) Get(command, arg string, limit int) []string {
	values := s.data[command][arg]
	if len(values) == 0 {
		return nil
	}

	type entry struct {
		value string
		at    float64
	}
	entries := make([]entry, 0, len(values))
	for v, at := range values {
		entries = append(entries, entry{value: v, at: at})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].at != entries[j].at {
			return entries[i].at > entries[j].at
		}
		return entries[i].value < entries[j].value
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}
	return out
}

// Path returns the backing file location, empty when persistence is
// unavailable.
func (s *Store) Path() string {
	return s.path
}
