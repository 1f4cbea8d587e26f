// Package wizard drives a form template one step at a time, gating each
// advance on the current step's fields and validating the whole form before
// handing the collected values to the caller's submit callback.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/salmondarat/Flow-sub001/internal/form"
)

var (
	// ErrSubmitting is returned for any transition attempted while the
	// submit callback is running.
	ErrSubmitting = errors.New("submission in progress")
	// ErrSubmitted is returned for any transition after a successful submit.
	ErrSubmitted = errors.New("form already submitted")
	// ErrJumpForward is returned when jumping to the current or a later step.
	ErrJumpForward = errors.New("can only jump back to a completed step")
	// ErrUnknownField is returned when setting a key the template does not declare.
	ErrUnknownField = errors.New("unknown field")
)

// SubmissionError wraps the error returned by the submit callback.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "submit: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// State is the controller state.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome describes what an Advance call did.
type Outcome int

const (
	// OutcomeInvalid means validation failed; see Errors.
	OutcomeInvalid Outcome = iota
	// OutcomeAdvanced means the session moved to the next step.
	OutcomeAdvanced
	// OutcomeSubmitted means the submit callback succeeded.
	OutcomeSubmitted
)

// SubmitFunc receives the full values bag. It may block on I/O.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Session is one traversal of a template. Field changes and navigation
// complete in memory; only the submit callback may block, and no other
// transition is accepted while it runs.
type Session struct {
	mu       sync.Mutex
	template *form.Template
	submit   SubmitFunc
	logger   *slog.Logger

	current int
	values  map[string]any
	errors  map[string]string
	state   State
}

// Option configures a Session.
type Option func(*Session)

// WithInitialValues seeds values on top of the template defaults.
func WithInitialValues(values map[string]any) Option {
	return func(s *Session) {
		maps.Copy(s.values, values)
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New opens a session over a copy of tmpl. The template is validated first;
// a *form.ConfigurationError prevents the session from opening.
func New(tmpl *form.Template, submit SubmitFunc, opts ...Option) (*Session, error) {
	if tmpl == nil {
		return nil, errors.New("template is required")
	}
	if submit == nil {
		return nil, errors.New("submit callback is required")
	}

	t := tmpl.Clone()
	if err := t.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		template: t,
		submit:   submit,
		logger:   slog.Default(),
		values:   t.Defaults(),
		errors:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Template returns the session's template. Callers must not modify it.
func (s *Session) Template() *form.Template {
	return s.template
}

// StepCount returns the number of steps.
func (s *Session) StepCount() int {
	return len(s.template.Steps)
}

// StepIndex returns the 0-based current step.
func (s *Session) StepIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentStep returns the step being edited.
func (s *Session) CurrentStep() form.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template.Steps[s.current]
}

// IsLastStep reports whether the current step is the final one.
func (s *Session) IsLastStep() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLast()
}

func (s *Session) isLast() bool {
	return s.current == len(s.template.Steps)-1
}

// Progress returns (current step + 1) / step count, in (0, 1].
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.current+1) / float64(len(s.template.Steps))
}

// State returns the controller state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsSubmitting reports whether the submit callback is running.
func (s *Session) IsSubmitting() bool {
	return s.State() == StateSubmitting
}

// Values returns a copy of the collected values.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.values)
}

// Value returns one collected value.
func (s *Session) Value(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Errors returns a copy of the current field errors.
func (s *Session) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.errors)
}

// checkEditable must be called with mu held.
func (s *Session) checkEditable() error {
	switch s.state {
	case StateSubmitting:
		return ErrSubmitting
	case StateSubmitted:
		return ErrSubmitted
	default:
		return nil
	}
}
