// Package prompt walks a wizard session in the terminal, asking for each
// field of the current step and showing validation errors until the form
// is submitted.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/salmondarat/Flow-sub001/internal/wizard"
	"github.com/samber/lo"
)

const (
	choiceContinue = "Continue"
	choiceSubmit   = "Submit"
	choiceBack     = "Back"
	noneOption     = "(none)"
)

// Runner drives a session through a Driver.
type Runner struct {
	driver Driver
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets a custom logger for the runner.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner. A nil driver uses the survey terminal driver.
func NewRunner(driver Driver, opts ...RunnerOption) *Runner {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	r := &Runner{
		driver: driver,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run prompts until the session is submitted. After a failed submit the
// user may retry; declining returns ErrDeclined wrapping the submit error.
func (r *Runner) Run(ctx context.Context, s *wizard.Session) error {
	for s.State() != wizard.StateSubmitted {
		if err := ctx.Err(); err != nil {
			return err
		}

		step := s.CurrentStep()
		header := fmt.Sprintf("Step %d of %d: %s", s.StepIndex()+1, s.StepCount(), step.Title)
		if err := r.driver.Info(ctx, header); err != nil {
			return err
		}
		if step.Description != "" {
			if err := r.driver.Info(ctx, strings.TrimSpace(step.Description)); err != nil {
				return err
			}
		}

		for _, f := range step.Fields {
			if err := r.askField(ctx, s, f); err != nil {
				return fmt.Errorf("field %s: %w", f.Key, err)
			}
		}

		if s.StepIndex() > 0 {
			back, err := r.askBack(ctx, s.IsLastStep())
			if err != nil {
				return err
			}
			if back {
				if err := s.Back(); err != nil {
					return err
				}
				continue
			}
		}

		out, err := s.Advance(ctx)
		var subErr *wizard.SubmissionError
		switch {
		case errors.As(err, &subErr):
			retry, err := r.askRetry(ctx, subErr)
			if err != nil {
				return err
			}
			if !retry {
				return fmt.Errorf("%w: %w", ErrDeclined, subErr)
			}
		case err != nil:
			return err
		case out == wizard.OutcomeInvalid:
			if err := r.showErrors(ctx, s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) askBack(ctx context.Context, last bool) (bool, error) {
	forward := choiceContinue
	if last {
		forward = choiceSubmit
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: "Next",
		Options: []string{forward, choiceBack},
	})
	if err != nil {
		return false, err
	}
	return idx == 1, nil
}

func (r *Runner) askRetry(ctx context.Context, subErr *wizard.SubmissionError) (bool, error) {
	r.logger.Warn("submission failed", "error", subErr.Err)
	if err := r.driver.Info(ctx, "Submission failed: "+subErr.Err.Error()); err != nil {
		return false, err
	}
	return r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
}

func (r *Runner) showErrors(ctx context.Context, s *wizard.Session) error {
	errs := s.Errors()
	keys := lo.Keys(errs)
	slices.Sort(keys)
	for _, k := range keys {
		if err := r.driver.Info(ctx, "  ! "+errs[k]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) askField(ctx context.Context, s *wizard.Session, f form.Field) error {
	current, _ := s.Value(f.Key)
	message := f.Label
	if f.Required {
		message += " *"
	}
	help := f.Placeholder

	var (
		value any
		err   error
	)
	switch f.Type {
	case form.FieldTextarea:
		var text string
		text, err = r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: stringValue(current), Help: help})
		value = emptyToNil(text)

	case form.FieldSelect:
		value, err = r.askSelect(ctx, f, message, current)

	case form.FieldCheckbox:
		checked, _ := current.(bool)
		value, err = r.driver.Confirm(ctx, ConfirmConfig{Message: f.Label, Default: checked, Help: help})

	case form.FieldNumber:
		var text string
		text, err = r.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   numberValue(current),
			Help:      help,
			Validator: validateNumber,
		})
		if err == nil {
			value, err = parseNumber(text)
		}

	case form.FieldFile:
		var text string
		text, err = r.driver.Input(ctx, InputConfig{Message: message + " (file path)", Default: stringValue(current), Help: help})
		value = emptyToNil(strings.TrimSpace(text))

	default:
		var text string
		text, err = r.driver.Input(ctx, InputConfig{Message: message, Default: stringValue(current), Help: help})
		value = emptyToNil(text)
	}
	if err != nil {
		return err
	}

	return s.SetValue(f.Key, value)
}

func (r *Runner) askSelect(ctx context.Context, f form.Field, message string, current any) (any, error) {
	options := slices.Clone(f.Options)
	if !f.Required {
		options = append([]string{noneOption}, options...)
	}

	def := slices.Index(options, stringValue(current))
	if def < 0 {
		def = 0
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: def,
		Help:         f.Placeholder,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(options) {
		return nil, fmt.Errorf("selection %d out of range", idx)
	}
	if options[idx] == noneOption && !f.Required {
		return nil, nil
	}
	return options[idx], nil
}

func validateNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

func parseNumber(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("parse number %q: %w", s, err)
	}
	return n, nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func numberValue(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return stringValue(v)
}

func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
