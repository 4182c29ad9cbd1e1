package run

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a run
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Common errors returned by the store
var (
	// ErrNotFound indicates the requested run doesn't exist
	ErrNotFound = errors.New("run not found")
)

// Record describes a single action invocation
type Record struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Kind       string    `json:"kind"`
	Status     Status    `json:"status"`
	Output     string    `json:"output,omitempty"`
	ExitCode   int       `json:"exit_code"`
	Error      string    `json:"error,omitempty"`
	Commit     string    `json:"commit,omitempty"`
	Branch     string    `json:"branch,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

// Store keeps run records in memory, safe for concurrent use
type Store struct {
	mu   sync.RWMutex
	runs map[string]*Record
}

// NewStore creates a new run store
func NewStore() *Store {
	return &Store{
		runs: make(map[string]*Record),
	}
}

// Begin creates a running record for an action and returns its copy
func (s *Store) Begin(actionName, kind string) *Record {
	rec := &Record{
		ID:        uuid.NewString(),
		Action:    actionName,
		Kind:      kind,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}

	s.mu.Lock()
	s.runs[rec.ID] = rec
	s.mu.Unlock()

	recCopy := *rec
	return &recCopy
}

// Finish marks a run as completed and stores its outcome
func (s *Store) Finish(id string, update func(*Record)) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.runs[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	update(rec)
	rec.FinishedAt = time.Now()

	recCopy := *rec
	return &recCopy, nil
}

// Get retrieves a run by ID
func (s *Store) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.runs[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	recCopy := *rec
	return &recCopy, nil
}

// List returns runs, newest first, optionally filtered by action name
func (s *Store) List(actionName string) []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*Record, 0, len(s.runs))
	for _, rec := range s.runs {
		if actionName != "" && rec.Action != actionName {
			continue
		}
		recCopy := *rec
		records = append(records, &recCopy)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})

	return records
}

// Count returns the number of stored runs
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.runs)
}

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
