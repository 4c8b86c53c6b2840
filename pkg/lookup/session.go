// Package lookup holds the query/response state behind every country
// lookup surface: the current query, which request is current, and what
// the result of that request was.
package lookup

import (
	"github.com/google/uuid"

	"github.com/MakerMaker19/countryinfo/pkg/country"
)

// ErrorText is the one failure message every surface shows. Upstream
// error detail goes to the log, never to the user.
const ErrorText = "Failed to load country info"

// State is where a Session is in its Empty -> Loading -> Loaded|Failed cycle.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request is one fetch for one query value. Gen ties the result back to
// the query that asked for it.
type Request struct {
	ID    string
	Query string
	Gen   uint64
}

// Result is what came back for a Request.
type Result struct {
	Request Request
	Records []country.Record
	Err     error
}

// Session is the single query/response pair a UI holds. It is a plain
// value with no locking; the owner drives it from one goroutine (the
// bubbletea update loop, or a single HTTP handler invocation).
type Session struct {
	query   string
	gen     uint64
	state   State
	pending Request
	records []country.Record
	err     error
}

// SetQuery replaces the query as typed. A non-empty query moves the
// session to Loading and returns the request to issue; the empty query
// returns to Empty and asks for nothing.
//
// Any result still in flight for an earlier query is now stale.
func (s *Session) SetQuery(q string) (Request, bool) {
	s.query = q
	s.gen++
	s.records = nil
	s.err = nil

	if q == "" {
		s.state = StateEmpty
		s.pending = Request{}
		return Request{}, false
	}

	s.state = StateLoading
	s.pending = Request{
		ID:    uuid.New().String(),
		Query: q,
		Gen:   s.gen,
	}
	return s.pending, true
}

// Resolve applies a result if it belongs to the current request and
// reports whether it did. Results for superseded requests are dropped.
func (s *Session) Resolve(res Result) bool {
	if s.state != StateLoading || res.Request.Gen != s.gen {
		return false
	}

	s.pending = Request{}
	if res.Err != nil {
		s.state = StateFailed
		s.err = res.Err
		s.records = nil
		return true
	}

	s.state = StateLoaded
	s.records = res.Records
	return true
}

func (s *Session) Query() string { return s.query }

func (s *Session) State() State { return s.state }

// Pending is the request awaiting a result, if any.
func (s *Session) Pending() (Request, bool) {
	return s.pending, s.state == StateLoading
}

// Err is the last fetch error while in StateFailed.
func (s *Session) Err() error { return s.err }

// Record is the record to display: the first element of the latest
// successful response. An empty response leaves nothing to display.
func (s *Session) Record() (country.Record, bool) {
	if s.state != StateLoaded || len(s.records) == 0 {
		return country.Record{}, false
	}
	return s.records[0], true
}

// Records is the full latest successful response.
func (s *Session) Records() []country.Record {
	if s.state != StateLoaded {
		return nil
	}
	return s.records
}
