// Package store holds captured diagnostic records in a bounded in-memory
// buffer for the MCP tools to read. Records are assigned monotonically
// increasing ids; when the buffer is full the oldest records are dropped.
package store

import (
	"sync"
	"time"

	"github.com/probelab/diaglens/internal/diag"
)

// Record is one captured console message or uncaught error.
type Record struct {
	ID  int64
	At  time.Time
	Msg *diag.ConsoleMessage
	Err *diag.RawError
}

// Source returns the record as formatter input.
func (r Record) Source() diag.Source {
	if r.Err != nil {
		return diag.UncaughtError{Err: *r.Err}
	}
	return *r.Msg
}

// Kind returns the record's message kind; uncaught errors are "error".
func (r Record) Kind() string {
	if r.Err != nil {
		return "error"
	}
	return r.Msg.Kind
}

// Store is a thread-safe bounded record buffer.
type Store struct {
	mu       sync.Mutex
	capacity int
	nextID   int64
	records  []Record
}

// New creates a store that retains at most capacity records.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = 1000
	}
	return &Store{capacity: capacity, nextID: 1}
}

// AddMessage appends a console message and returns the stored record.
func (s *Store) AddMessage(msg diag.ConsoleMessage) Record {
	return s.add(Record{Msg: &msg})
}

// AddError appends an uncaught error and returns the stored record.
func (s *Store) AddError(err diag.RawError) Record {
	return s.add(Record{Err: &err})
}

func (s *Store) add(rec Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	rec.At = time.Now()
	s.nextID++

	s.records = append(s.records, rec)
	if len(s.records) > s.capacity {
		s.records = s.records[len(s.records)-s.capacity:]
	}
	return rec
}

// List returns records with id greater than afterID, oldest first,
// optionally filtered by kind.
func (s *Store) List(afterID int64, kind string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, rec := range s.records {
		if rec.ID <= afterID {
			continue
		}
		if kind != "" && rec.Kind() != kind {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id int64) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// LastID returns the id of the newest record, or 0 when empty.
func (s *Store) LastID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return 0
	}
	return s.records[len(s.records)-1].ID
}

// Clear drops all records. Ids keep increasing across clears.
func (s *Store) Clear() {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
}
