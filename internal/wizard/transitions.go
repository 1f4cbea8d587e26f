package wizard

import (
	"context"
	"fmt"
	"maps"

	"github.com/salmondarat/Flow-sub001/internal/form"
)

// SetValue stores a field value and clears that field's error. The field is
// not re-validated until the next advance.
func (s *Session) SetValue(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditable(); err != nil {
		return err
	}
	if _, ok := s.template.Field(key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}

	s.values[key] = value
	delete(s.errors, key)
	return nil
}

// Back moves to the previous step without validating. Values and errors
// are kept. It is a no-op on the first step.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditable(); err != nil {
		return err
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

// JumpTo revisits an earlier step. Only indexes below the current step are
// accepted; nothing is validated and existing errors stay.
func (s *Session) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditable(); err != nil {
		return err
	}
	if index < 0 || index >= s.current {
		return fmt.Errorf("%w: step %d from step %d", ErrJumpForward, index, s.current)
	}
	s.current = index
	return nil
}

// Advance validates the current step. On a middle step it moves forward.
// On the last step it validates the whole form and, if that passes, runs
// the submit callback with the values bag. A failing callback returns the
// session to editing the last step with all values kept and the callback's
// error wrapped in *SubmissionError. A panicking callback is reported the
// same way.
func (s *Session) Advance(ctx context.Context) (Outcome, error) {
	s.mu.Lock()

	if err := s.checkEditable(); err != nil {
		s.mu.Unlock()
		return OutcomeInvalid, err
	}

	step := s.template.Steps[s.current]
	if res := form.ValidateStep(step, s.values); !res.Valid {
		s.errors = res.Errors
		s.mu.Unlock()
		return OutcomeInvalid, nil
	}

	if !s.isLast() {
		s.current++
		s.errors = make(map[string]string)
		s.mu.Unlock()
		return OutcomeAdvanced, nil
	}

	if res := form.ValidateForm(s.template, s.values); !res.Valid {
		s.errors = res.Errors
		s.mu.Unlock()
		return OutcomeInvalid, nil
	}

	s.errors = make(map[string]string)
	s.state = StateSubmitting
	values := maps.Clone(s.values)
	s.mu.Unlock()

	s.logger.Debug("submitting form", "template_id", s.template.ID, "fields", len(values))
	err := s.runSubmit(ctx, values)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateEditing
		s.logger.Info("form submission failed", "template_id", s.template.ID, "error", err)
		return OutcomeInvalid, &SubmissionError{Err: err}
	}

	s.state = StateSubmitted
	return OutcomeSubmitted, nil
}

// runSubmit calls the submit callback, turning a panic into an error so the
// session always leaves StateSubmitting.
func (s *Session) runSubmit(ctx context.Context, values map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("submit callback panicked: %v", r)
		}
	}()
	return s.submit(ctx, values)
}
