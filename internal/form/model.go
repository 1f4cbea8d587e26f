// Package form holds the configurable order form: the template document
// (steps, fields, validation rules, services and pricing section), its
// structural checks, and the field and form validators run by the wizard.
package form

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// FieldType is the closed set of input kinds a template field may declare.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldNumber   FieldType = "number"
	FieldFile     FieldType = "file"
)

// FieldTypes lists every supported field type.
var FieldTypes = []FieldType{FieldText, FieldTextarea, FieldSelect, FieldCheckbox, FieldNumber, FieldFile}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldTextarea, FieldSelect, FieldCheckbox, FieldNumber, FieldFile:
		return true
	default:
		return false
	}
}

// UnmarshalText rejects unknown field types while decoding a template.
func (t *FieldType) UnmarshalText(text []byte) error {
	v := FieldType(text)
	if !v.Valid() {
		return fmt.Errorf("unknown field type %q", string(text))
	}
	*t = v
	return nil
}

// Complexity is a named pricing tier.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Complexities lists the complexity tiers in ascending order.
var Complexities = []Complexity{ComplexityLow, ComplexityMedium, ComplexityHigh}

// Valid reports whether c is a known complexity tier.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return true
	default:
		return false
	}
}

// ValidationRule holds optional constraints for a field. A nil pointer or
// empty pattern means no constraint of that kind.
type ValidationRule struct {
	Pattern       string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength     *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength     *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min           *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max           *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	CustomMessage string   `json:"customMessage,omitempty" yaml:"customMessage,omitempty"`

	re *regexp.Regexp
}

// Field is one input of a step. Key names the value in the collected data bag.
type Field struct {
	ID           string          `json:"id" yaml:"id"`
	Key          string          `json:"key" yaml:"key"`
	Type         FieldType       `json:"type" yaml:"type"`
	Label        string          `json:"label" yaml:"label"`
	Placeholder  string          `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required     bool            `json:"required" yaml:"required"`
	Validation   *ValidationRule `json:"validation,omitempty" yaml:"validation,omitempty"`
	Options      []string        `json:"options,omitempty" yaml:"options,omitempty"`
	DefaultValue any             `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// Step is an ordered page of the wizard.
type Step struct {
	ID          string  `json:"id" yaml:"id"`
	Order       int     `json:"order" yaml:"order"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Service describes an offerable service listed by the template.
type Service struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ServiceConfig is the services section of a template.
type ServiceConfig struct {
	Services []Service `json:"services" yaml:"services"`
}

// PricingConfig is the static pricing section of a template. BasePrice is in
// cents. ServicePricing weights default to 1 for services without an entry.
type PricingConfig struct {
	BasePrice            int64                      `json:"basePrice" yaml:"basePrice"`
	ComplexityMultiplier map[string]decimal.Decimal `json:"complexityMultiplier" yaml:"complexityMultiplier"`
	ServicePricing       map[string]decimal.Decimal `json:"servicePricing,omitempty" yaml:"servicePricing,omitempty"`
}

// ServiceWeight returns the relative price weight for a service id.
func (p PricingConfig) ServiceWeight(serviceID string) decimal.Decimal {
	if w, ok := p.ServicePricing[serviceID]; ok {
		return w
	}
	return decimal.NewFromInt(1)
}

// Template is the root configuration document of an order form.
type Template struct {
	ID            string        `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string        `json:"name,omitempty" yaml:"name,omitempty"`
	Version       int           `json:"version,omitempty" yaml:"version,omitempty"`
	Steps         []Step        `json:"steps" yaml:"steps"`
	ServiceConfig ServiceConfig `json:"serviceConfig" yaml:"serviceConfig"`
	PricingConfig PricingConfig `json:"pricingConfig" yaml:"pricingConfig"`
}
