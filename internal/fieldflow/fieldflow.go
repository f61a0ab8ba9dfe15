// Package fieldflow is an alternate, schema-driven intake engine: a
// flow walks an ordered list of field specs and collects one value per
// turn into a session. It is not wired into the live turn path; the
// conversational engine in internal/service supersedes it.
package fieldflow

import (
	"strings"
)

// Phase tracks where a session is in its flow.
type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseComplete   Phase = "complete"
)

// FieldSpec describes one field a flow collects. Parse turns raw input
// into a stored value; a nil Parse accepts the trimmed text as-is.
type FieldSpec struct {
	Key      string
	Prompt   string
	Optional bool
	Parse    func(input string) (any, bool)
}

// Entry is one history item of a session.
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds collected values and the conversation so far.
type Session struct {
	Values  map[string]any `json:"values"`
	History []Entry        `json:"history,omitempty"`
	Phase   Phase          `json:"phase"`
}

// Flow walks an ordered field list.
type Flow struct {
	specs []FieldSpec
}

// New creates a flow over the given specs. Order is ask order.
func New(specs []FieldSpec) *Flow {
	return &Flow{specs: specs}
}

// NewSession starts an empty collecting session.
func (f *Flow) NewSession() *Session {
	return &Session{Values: make(map[string]any), Phase: PhaseCollecting}
}

// Next returns the first spec without a collected value, or nil when
// the flow is complete.
func (f *Flow) Next(s *Session) *FieldSpec {
	for i := range f.specs {
		if _, ok := s.Values[f.specs[i].Key]; !ok {
			return &f.specs[i]
		}
	}
	return nil
}

var skipWords = map[string]bool{"skip": true, "pass": true, "n/a": true, "none": true}

// Advance feeds one user input to the current field and returns the
// next prompt. Optional fields may be skipped with a skip word; a
// failed parse re-prompts the same field. done is true once every
// field has a value (or was skipped).
func (f *Flow) Advance(s *Session, input string) (prompt string, done bool) {
	if s.Phase == PhaseComplete {
		return "", true
	}

	trimmed := strings.TrimSpace(input)
	s.History = append(s.History, Entry{Role: "user", Content: trimmed})

	spec := f.Next(s)
	if spec == nil {
		s.Phase = PhaseComplete
		return "", true
	}

	switch {
	case spec.Optional && skipWords[strings.ToLower(trimmed)]:
		s.Values[spec.Key] = nil
	case spec.Parse == nil:
		if trimmed == "" {
			return f.reprompt(s, spec)
		}
		s.Values[spec.Key] = trimmed
	default:
		v, ok := spec.Parse(trimmed)
		if !ok {
			return f.reprompt(s, spec)
		}
		s.Values[spec.Key] = v
	}

	next := f.Next(s)
	if next == nil {
		s.Phase = PhaseComplete
		return "", true
	}
	return f.ask(s, next), false
}

func (f *Flow) reprompt(s *Session, spec *FieldSpec) (string, bool) {
	return f.ask(s, spec), false
}

func (f *Flow) ask(s *Session, spec *FieldSpec) string {
	s.History = append(s.History, Entry{Role: "assistant", Content: spec.Prompt})
	return spec.Prompt
}
