package tasks

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"taskcal/internal/storage"
)

// DefaultKey is the storage key holding the task list.
const DefaultKey = "tasks"

// ErrStorageWrite is returned alongside a created task when it could not be
// persisted. The task is kept in memory regardless.
var ErrStorageWrite = errors.New("persist tasks")

// Store owns the task list and mirrors it to a storage.Backend after every
// change.
type Store struct {
	backend      storage.Backend
	key          string
	loc          *time.Location
	defaultColor string
	log          zerolog.Logger
	newID        func() string

	mu    sync.RWMutex
	tasks []Task
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLocation sets the zone used to normalize timestamp dates.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithDefaultColor(color string) Option {
	return func(s *Store) {
		if color != "" {
			s.defaultColor = color
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDFunc replaces the id generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewStore(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend:      backend,
		key:          DefaultKey,
		loc:          time.Local,
		defaultColor: DefaultColor,
		log:          zerolog.Nop(),
		newID:        newID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newID returns a UUIDv7, which sorts by creation time.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load replaces the in-memory list with the persisted one. Missing data
// yields an empty list; unreadable data is logged and also yields an empty
// list. Load never fails.
func (s *Store) Load() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil

	raw, ok, err := s.backend.Get(s.key)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("key", s.key).Msg("failed to read stored tasks, starting empty")
		return nil
	case !ok:
		s.log.Debug().Str("key", s.key).Msg("no stored tasks")
		return nil
	}

	list, bad, err := Decode([]byte(raw), s.loc)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("failed to parse stored tasks, starting empty")
		return nil
	}
	for _, b := range bad {
		s.log.Warn().Err(b.Err).Int("index", b.Index).Str("id", b.ID).Msg("skipping stored task with bad date")
	}

	s.tasks = list
	s.log.Debug().Int("count", len(list)).Msg("loaded tasks")
	return cloneAll(list)
}

// AddTask validates req, appends a new task with a fresh id and persists the
// whole list. A persistence failure is reported with ErrStorageWrite but the
// returned task has been added.
func (s *Store) AddTask(req Request) (Task, error) {
	if err := req.Validate(); err != nil {
		return Task{}, err
	}
	t, err := req.task(s.loc, s.defaultColor)
	if err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.uniqueID()
	s.tasks = append(s.tasks, t)
	s.log.Debug().Str("id", t.ID).Str("date", t.Date.String()).Msg("added task")

	if err := s.persist(); err != nil {
		s.log.Error().Err(err).Str("key", s.key).Msg("failed to save tasks")
		return t.clone(), fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return t.clone(), nil
}

// Tasks returns a deep copy of the list in insertion order.
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.tasks)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Location is the zone the store normalizes dates in.
func (s *Store) Location() *time.Location {
	return s.loc
}

// uniqueID asks the generator for an id not already held, falling back to a
// random UUID. Callers hold s.mu.
func (s *Store) uniqueID() string {
	for range 3 {
		id := s.newID()
		if id != "" && !s.hasID(id) {
			return id
		}
	}
	return uuid.NewString()
}

func (s *Store) hasID(id string) bool {
	return slices.ContainsFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

// persist writes the full list. Callers hold s.mu.
func (s *Store) persist() error {
	data, err := Encode(s.tasks)
	if err != nil {
		return err
	}
	return s.backend.Set(s.key, string(data))
}
