package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/salmondarat/Flow-sub001/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	textAreas []string
	infos     []string
	selects   []SelectConfig
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(s.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	v := s.confirm[0]
	s.confirm = s.confirm[1:]
	return v, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if len(s.selectIdx) == 0 {
		return -1, errors.New("no select scripted")
	}
	v := s.selectIdx[0]
	s.selectIdx = s.selectIdx[1:]
	return v, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if len(s.textAreas) == 0 {
		return "", errors.New("no textarea scripted")
	}
	v := s.textAreas[0]
	s.textAreas = s.textAreas[1:]
	return v, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func promptTemplate() *form.Template {
	return &form.Template{
		ID: "prompt-test",
		Steps: []form.Step{
			{
				ID: "service", Order: 1, Title: "Service",
				Fields: []form.Field{
					{Key: "service_type", Type: form.FieldSelect, Label: "Service type", Required: true,
						Options: []string{"full_build", "repair"}},
					{Key: "quantity", Type: form.FieldNumber, Label: "Quantity", Required: true,
						Validation: &form.ValidationRule{Min: floatPtr(1)}},
				},
			},
			{
				ID: "contact", Order: 2, Title: "Contact",
				Fields: []form.Field{
					{Key: "notes", Type: form.FieldTextarea, Label: "Notes"},
					{Key: "email", Type: form.FieldText, Label: "Email", Required: true},
				},
			},
		},
		ServiceConfig: form.ServiceConfig{Services: []form.Service{{ID: "repair", Name: "Repair"}}},
	}
}

func TestRunner_Run(t *testing.T) {
	var submitted map[string]any
	s, err := wizard.New(promptTemplate(), func(_ context.Context, values map[string]any) error {
		submitted = values
		return nil
	})
	require.NoError(t, err)

	d := &stubDriver{
		// service step twice (first quantity invalid), again after going back
		selectIdx: []int{1, 1, 1, 1, 0},
		inputs:    []string{"0", "2", "a@b.c", "3", "a@b.c"},
		textAreas: []string{"", "keep the decals"},
	}

	require.NoError(t, NewRunner(d).Run(context.Background(), s))

	want := map[string]any{
		"service_type": "repair",
		"quantity":     3.0,
		"notes":        "keep the decals",
		"email":        "a@b.c",
	}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Errorf("submitted values mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, d.infos, "  ! Quantity must be at least 1")
	assert.Contains(t, d.infos, "Step 2 of 2: Contact")
	assert.Equal(t, []string{choiceSubmit, choiceBack}, d.selects[len(d.selects)-1].Options)
}

func TestRunner_RetryAfterFailedSubmit(t *testing.T) {
	calls := 0
	s, err := wizard.New(promptTemplate(), func(context.Context, map[string]any) error {
		calls++
		if calls == 1 {
			return errors.New("server unavailable")
		}
		return nil
	})
	require.NoError(t, err)

	d := &stubDriver{
		selectIdx: []int{0, 0, 0},
		inputs:    []string{"1", "a@b.c", "a@b.c"},
		textAreas: []string{"", ""},
		confirm:   []bool{true},
	}

	require.NoError(t, NewRunner(d).Run(context.Background(), s))
	assert.Equal(t, 2, calls)
	assert.Contains(t, d.infos, "Submission failed: server unavailable")
	assert.Equal(t, wizard.StateSubmitted, s.State())
}

func TestRunner_DeclineRetry(t *testing.T) {
	boom := errors.New("server unavailable")
	s, err := wizard.New(promptTemplate(), func(context.Context, map[string]any) error {
		return boom
	})
	require.NoError(t, err)

	d := &stubDriver{
		selectIdx: []int{0, 0},
		inputs:    []string{"1", "a@b.c"},
		textAreas: []string{""},
		confirm:   []bool{false},
	}

	err = NewRunner(d).Run(context.Background(), s)
	assert.ErrorIs(t, err, ErrDeclined)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, wizard.StateEditing, s.State())
}

func TestRunner_DriverErrorStops(t *testing.T) {
	s, err := wizard.New(promptTemplate(), func(context.Context, map[string]any) error { return nil })
	require.NoError(t, err)

	err = NewRunner(&stubDriver{}).Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field service_type")
}

func TestRunner_OptionalSelectOffersNone(t *testing.T) {
	tmpl := &form.Template{
		Steps: []form.Step{{
			ID: "only", Order: 1, Title: "Only",
			Fields: []form.Field{
				{Key: "finish", Type: form.FieldSelect, Label: "Finish", Options: []string{"matte", "gloss"}},
			},
		}},
		ServiceConfig: form.ServiceConfig{Services: []form.Service{{ID: "repair"}}},
	}
	var submitted map[string]any
	s, err := wizard.New(tmpl, func(_ context.Context, v map[string]any) error {
		submitted = v
		return nil
	})
	require.NoError(t, err)

	d := &stubDriver{selectIdx: []int{0}}
	require.NoError(t, NewRunner(d).Run(context.Background(), s))

	assert.Equal(t, []string{noneOption, "matte", "gloss"}, d.selects[0].Options)
	assert.Equal(t, map[string]any{"finish": nil}, submitted)
}

func TestParseNumber(t *testing.T) {
	v, err := parseNumber(" 2.5 ")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	v, err = parseNumber("")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = parseNumber("two")
	assert.Error(t, err)

	assert.NoError(t, validateNumber(""))
	assert.Error(t, validateNumber("x"))
}
