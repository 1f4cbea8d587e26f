package form

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Result is the outcome of validating one field.
type Result struct {
	Valid bool
	Error string
}

func pass() Result { return Result{Valid: true} }

func fail(msg string) Result { return Result{Error: msg} }

// IsEmpty reports whether a value counts as absent: nil, the empty string
// or an empty list.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// ValidateField checks value against the field's required flag, its type and
// its rule set. At most one message is produced.
func ValidateField(f Field, value any) Result {
	if IsEmpty(value) {
		if f.Required {
			return fail(f.Label + " is required")
		}
		return pass()
	}

	if r := checkType(f, value); !r.Valid {
		return r
	}

	if f.Validation == nil {
		return pass()
	}
	return checkRule(f, *f.Validation, value)
}

func checkType(f Field, value any) Result {
	switch f.Type {
	case FieldText, FieldTextarea:
		if _, ok := value.(string); !ok {
			return fail(f.Label + " must be text")
		}
	case FieldNumber:
		if _, ok := toFloat(value); !ok {
			return fail(f.Label + " must be a number")
		}
	case FieldSelect:
		s, ok := value.(string)
		if !ok || !slices.Contains(f.Options, s) {
			return fail(fmt.Sprintf("%s must be one of: %s", f.Label, strings.Join(f.Options, ", ")))
		}
	case FieldCheckbox:
		if _, ok := value.(bool); !ok {
			return fail(f.Label + " must be checked or unchecked")
		}
	case FieldFile:
		if !isFileRef(value) {
			return fail(f.Label + " must reference an uploaded file")
		}
	default:
		return fail(fmt.Sprintf("%s has unsupported type %q", f.Label, f.Type))
	}
	return pass()
}

func checkRule(f Field, rule ValidationRule, value any) Result {
	message := func(def string) Result {
		if rule.CustomMessage != "" {
			return fail(rule.CustomMessage)
		}
		return fail(def)
	}

	text := stringify(value)

	if rule.Pattern != "" {
		re := rule.re
		if re == nil {
			var err error
			if re, err = regexp.Compile(rule.Pattern); err != nil {
				return message(f.Label + " has an invalid format")
			}
		}
		if !re.MatchString(text) {
			return message(f.Label + " has an invalid format")
		}
	}

	if s, ok := value.(string); ok {
		n := utf8.RuneCountInString(s)
		if rule.MinLength != nil && n < *rule.MinLength {
			return message(fmt.Sprintf("%s must be at least %d characters", f.Label, *rule.MinLength))
		}
		if rule.MaxLength != nil && n > *rule.MaxLength {
			return message(fmt.Sprintf("%s must be at most %d characters", f.Label, *rule.MaxLength))
		}
	}

	if n, ok := toFloat(value); ok {
		if rule.Min != nil && n < *rule.Min {
			return message(fmt.Sprintf("%s must be at least %s", f.Label, formatNumber(*rule.Min)))
		}
		if rule.Max != nil && n > *rule.Max {
			return message(fmt.Sprintf("%s must be at most %s", f.Label, formatNumber(*rule.Max)))
		}
	}

	return pass()
}

// toFloat accepts Go numeric kinds and json.Number. Strings are not numbers.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func isFileRef(value any) bool {
	switch v := value.(type) {
	case string:
		return true
	case []string:
		return len(v) > 0
	case []any:
		if len(v) == 0 {
			return false
		}
		for _, item := range v {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
