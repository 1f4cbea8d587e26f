package form

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"github.com/samber/lo"
)

// ConfigurationError reports every structural problem found in a template.
// A template carrying one must not be opened in a wizard.
type ConfigurationError struct {
	TemplateID string
	Problems   []string
}

func (e *ConfigurationError) Error() string {
	name := e.TemplateID
	if name == "" {
		name = "template"
	}
	return fmt.Sprintf("invalid %s: %s", name, strings.Join(e.Problems, "; "))
}

func (e *ConfigurationError) addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks the structural invariants of the template and prepares it
// for use: missing service ids are derived from names, patterns are compiled
// and steps are sorted by order. Returns *ConfigurationError on failure.
func (t *Template) Validate() error {
	cerr := &ConfigurationError{TemplateID: t.ID}

	if len(t.Steps) == 0 {
		cerr.addf("template has no steps")
	}

	stepIDs := make(map[string]bool, len(t.Steps))
	orders := make(map[int]string, len(t.Steps))
	keys := make(map[string]string)

	for si := range t.Steps {
		step := &t.Steps[si]
		ref := step.ID
		if ref == "" {
			ref = fmt.Sprintf("#%d", si)
		}

		if step.ID != "" {
			if stepIDs[step.ID] {
				cerr.addf("duplicate step id %q", step.ID)
			}
			stepIDs[step.ID] = true
		}
		if other, ok := orders[step.Order]; ok {
			cerr.addf("steps %s and %s share order %d", other, ref, step.Order)
		} else {
			orders[step.Order] = ref
		}
		if len(step.Fields) == 0 {
			cerr.addf("step %s has no fields", ref)
		}

		for fi := range step.Fields {
			field := &step.Fields[fi]
			if field.Key == "" {
				cerr.addf("step %s field #%d has no key", ref, fi)
				continue
			}
			if owner, ok := keys[field.Key]; ok {
				cerr.addf("field key %q used in steps %s and %s", field.Key, owner, ref)
			} else {
				keys[field.Key] = ref
			}
			checkField(cerr, field)
		}
	}

	checkServices(cerr, &t.ServiceConfig)
	checkPricing(cerr, t.PricingConfig)

	if len(cerr.Problems) > 0 {
		return cerr
	}

	slices.SortStableFunc(t.Steps, func(a, b Step) int { return cmp.Compare(a.Order, b.Order) })
	return nil
}

func checkField(cerr *ConfigurationError, f *Field) {
	if f.Label == "" {
		cerr.addf("field %q has no label", f.Key)
	}
	if !f.Type.Valid() {
		cerr.addf("field %q has unknown type %q", f.Key, f.Type)
	}

	if f.Type == FieldSelect {
		if len(f.Options) == 0 {
			cerr.addf("select field %q has no options", f.Key)
		}
		if len(lo.Uniq(f.Options)) != len(f.Options) {
			cerr.addf("select field %q has duplicate options", f.Key)
		}
		if def, ok := f.DefaultValue.(string); ok && def != "" && !slices.Contains(f.Options, def) {
			cerr.addf("select field %q default %q is not an option", f.Key, def)
		}
	}

	rule := f.Validation
	if rule == nil {
		return
	}
	if rule.Pattern != "" {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			cerr.addf("field %q pattern: %v", f.Key, err)
		} else {
			rule.re = re
		}
	}
	if rule.MinLength != nil && *rule.MinLength < 0 {
		cerr.addf("field %q minLength is negative", f.Key)
	}
	if rule.MaxLength != nil && *rule.MaxLength < 0 {
		cerr.addf("field %q maxLength is negative", f.Key)
	}
	if rule.MinLength != nil && rule.MaxLength != nil && *rule.MinLength > *rule.MaxLength {
		cerr.addf("field %q minLength %d exceeds maxLength %d", f.Key, *rule.MinLength, *rule.MaxLength)
	}
	if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
		cerr.addf("field %q min %v exceeds max %v", f.Key, *rule.Min, *rule.Max)
	}
}

func checkServices(cerr *ConfigurationError, cfg *ServiceConfig) {
	if len(cfg.Services) == 0 {
		cerr.addf("service config lists no services")
		return
	}

	seen := make(map[string]bool, len(cfg.Services))
	for i := range cfg.Services {
		svc := &cfg.Services[i]
		if svc.ID == "" {
			svc.ID = ServiceIDFromName(svc.Name)
		}
		if svc.ID == "" {
			cerr.addf("service #%d has neither id nor name", i)
			continue
		}
		if seen[svc.ID] {
			cerr.addf("duplicate service id %q", svc.ID)
		}
		seen[svc.ID] = true
	}
}

func checkPricing(cerr *ConfigurationError, p PricingConfig) {
	if p.BasePrice < 0 {
		cerr.addf("base price %d is negative", p.BasePrice)
	}
	for key, m := range p.ComplexityMultiplier {
		if !Complexity(key).Valid() {
			cerr.addf("unknown complexity %q in multipliers", key)
		}
		if m.IsNegative() {
			cerr.addf("complexity %q multiplier is negative", key)
		}
	}
	for id, w := range p.ServicePricing {
		if w.IsNegative() {
			cerr.addf("service %q price weight is negative", id)
		}
	}
}

// ServiceIDFromName derives a stable service id, e.g. "Full Build" -> "full_build".
func ServiceIDFromName(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", "_")
}

// Fields returns every field of the template in step order.
func (t *Template) Fields() []Field {
	return lo.FlatMap(t.Steps, func(s Step, _ int) []Field { return s.Fields })
}

// Field looks a field up by key.
func (t *Template) Field(key string) (Field, bool) {
	return lo.Find(t.Fields(), func(f Field) bool { return f.Key == key })
}

// Defaults returns the declared default values keyed by field key.
func (t *Template) Defaults() map[string]any {
	out := make(map[string]any)
	for _, f := range t.Fields() {
		if f.DefaultValue != nil {
			out[f.Key] = f.DefaultValue
		}
	}
	return out
}

// Clone returns a deep copy so a session can hold a template nobody else mutates.
func (t *Template) Clone() *Template {
	c := *t
	c.Steps = make([]Step, len(t.Steps))
	for i, s := range t.Steps {
		s.Fields = lo.Map(s.Fields, func(f Field, _ int) Field {
			f.Options = slices.Clone(f.Options)
			f.DefaultValue = cloneValue(f.DefaultValue)
			if f.Validation != nil {
				rule := *f.Validation
				f.Validation = &rule
			}
			return f
		})
		c.Steps[i] = s
	}
	c.ServiceConfig.Services = slices.Clone(t.ServiceConfig.Services)
	c.PricingConfig.ComplexityMultiplier = cloneMap(t.PricingConfig.ComplexityMultiplier)
	c.PricingConfig.ServicePricing = cloneMap(t.PricingConfig.ServicePricing)
	return &c
}

// cloneValue copies the list and map kinds a decoded default can hold.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		return lo.Map(t, func(item any, _ int) any { return cloneValue(item) })
	case []string:
		return slices.Clone(t)
	case map[string]any:
		return lo.MapValues(t, func(item any, _ string) any { return cloneValue(item) })
	default:
		return v
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
