package models

import (
	"fmt"
	"strings"

	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

// FieldType is the kind of observation a field collects.
type FieldType string

const (
	FieldTypeCheckBox   FieldType = "checkbox"
	FieldTypeNumber     FieldType = "number"
	FieldTypeAttachment FieldType = "attachment"
	FieldTypeInfo       FieldType = "info"
)

func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeCheckBox, FieldTypeNumber, FieldTypeAttachment, FieldTypeInfo:
		return true
	}
	return false
}

// RequirementUsage restricts which workflow role a requirement applies to.
type RequirementUsage string

const (
	UsageForAll                RequirementUsage = "for_all"
	UsageForSuppliersOnly      RequirementUsage = "for_suppliers_only"
	UsageForOtherThanSuppliers RequirementUsage = "for_other_than_suppliers"
)

func (u RequirementUsage) IsValid() bool {
	switch u {
	case UsageForAll, UsageForSuppliersOnly, UsageForOtherThanSuppliers:
		return true
	}
	return false
}

// Field is one configured input of a requirement definition.
type Field struct {
	ID           id.FieldID `json:"id" yaml:"id"`
	Label        string     `json:"label" yaml:"label"`
	Unit         string     `json:"unit,omitempty" yaml:"unit"`
	Type         FieldType  `json:"type" yaml:"type"`
	ShowPrevious bool       `json:"show_previous" yaml:"show_previous"`
	SortKey      int        `json:"sort_key" yaml:"sort_key"`
	IsVoided     bool       `json:"is_voided" yaml:"is_voided"`
}

// NeedsUserInput reports whether a period cannot become ready until this field is recorded.
// Info fields only carry instructions.
func (f Field) NeedsUserInput() bool {
	return f.Type != FieldTypeInfo
}

// RequirementDefinition is the read-only configuration a requirement is created from.
//
// Invariants:
//   - ID is non-nil
//   - DefaultIntervalWeeks is positive
//   - Field IDs are unique within the definition
type RequirementDefinition struct {
	ID                   id.RequirementDefinitionID `json:"id" yaml:"id"`
	Title                string                     `json:"title" yaml:"title"`
	Usage                RequirementUsage           `json:"usage" yaml:"usage"`
	DefaultIntervalWeeks int                        `json:"default_interval_weeks" yaml:"default_interval_weeks"`
	SortKey              int                        `json:"sort_key" yaml:"sort_key"`
	IsVoided             bool                       `json:"is_voided" yaml:"is_voided"`
	Fields               []Field                    `json:"fields" yaml:"fields"`
}

// NeedsUserInput is true when any active field requires a recorded value.
func (d *RequirementDefinition) NeedsUserInput() bool {
	for _, f := range d.Fields {
		if !f.IsVoided && f.NeedsUserInput() {
			return true
		}
	}
	return false
}

// Field looks up a field by ID.
func (d *RequirementDefinition) Field(fieldID id.FieldID) (Field, bool) {
	for _, f := range d.Fields {
		if f.ID == fieldID {
			return f, true
		}
	}
	return Field{}, false
}

// inputFields returns the fields that must be recorded before a period is ready.
func (d *RequirementDefinition) inputFields() []Field {
	var out []Field
	for _, f := range d.Fields {
		if !f.IsVoided && f.NeedsUserInput() {
			out = append(out, f)
		}
	}
	return out
}

func (d *RequirementDefinition) numberFields() []Field {
	var out []Field
	for _, f := range d.Fields {
		if !f.IsVoided && f.Type == FieldTypeNumber {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks the definition invariants. The catalog calls it before a
// definition becomes visible.
func (d *RequirementDefinition) Validate() error {
	if d.ID.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "requirement definition id is required")
	}
	if strings.TrimSpace(d.Title) == "" {
		return dErrors.New(dErrors.CodeValidation, "requirement definition title is required")
	}
	if d.DefaultIntervalWeeks <= 0 {
		return dErrors.New(dErrors.CodeValidation, "default interval weeks must be positive")
	}
	if d.Usage == "" {
		d.Usage = UsageForAll
	}
	if !d.Usage.IsValid() {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown requirement usage %q", d.Usage))
	}
	seen := make(map[id.FieldID]struct{}, len(d.Fields))
	for _, f := range d.Fields {
		if f.ID.IsNil() {
			return dErrors.New(dErrors.CodeMissingRequiredInput, "field id is required")
		}
		if !f.Type.IsValid() {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown field type %q", f.Type))
		}
		if _, dup := seen[f.ID]; dup {
			return dErrors.New(dErrors.CodeUniquenessViolation, fmt.Sprintf("field %s is defined twice", f.ID))
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}
