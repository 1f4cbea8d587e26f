package form

// FormResult aggregates field messages keyed by field key.
type FormResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

func validateFields(fields []Field, values map[string]any) FormResult {
	res := FormResult{Valid: true}
	for _, f := range fields {
		r := ValidateField(f, values[f.Key])
		if r.Valid {
			continue
		}
		if res.Errors == nil {
			res.Errors = make(map[string]string)
		}
		res.Valid = false
		res.Errors[f.Key] = r.Error
	}
	return res
}

// ValidateStep validates only the fields of one step.
func ValidateStep(step Step, values map[string]any) FormResult {
	return validateFields(step.Fields, values)
}

// ValidateForm validates every field of every step against values, whether
// or not the user ever visited the step. It has no side effects.
func ValidateForm(t *Template, values map[string]any) FormResult {
	return validateFields(t.Fields(), values)
}
