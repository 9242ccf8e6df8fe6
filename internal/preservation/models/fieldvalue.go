package models

import (
	id "preservation/pkg/domain"
)

// FieldValue is a recorded observation for one field in one period.
// The set of implementations is closed: CheckBoxChecked, NumberValue and AttachmentValue.
type FieldValue interface {
	FieldID() id.FieldID
	fieldType() FieldType
}

// CheckBoxChecked records a ticked checkbox. An unticked box is never stored.
type CheckBoxChecked struct {
	fieldID id.FieldID
}

func (v CheckBoxChecked) FieldID() id.FieldID  { return v.fieldID }
func (v CheckBoxChecked) fieldType() FieldType { return FieldTypeCheckBox }

// NumberValue records a numeric reading. A nil value is an explicit "not applicable".
type NumberValue struct {
	fieldID id.FieldID
	value   *float64
}

func (v NumberValue) FieldID() id.FieldID  { return v.fieldID }
func (v NumberValue) fieldType() FieldType { return FieldTypeNumber }

// Value returns the reading and false when the field was recorded as N/A.
func (v NumberValue) Value() (float64, bool) {
	if v.value == nil {
		return 0, false
	}
	return *v.value, true
}

func (v NumberValue) IsNA() bool { return v.value == nil }

// Attachment references a file kept in external blob storage.
type Attachment struct {
	ID       id.AttachmentID `json:"id"`
	FileName string          `json:"file_name"`
	BlobPath string          `json:"blob_path"`
}

// AttachmentValue records an uploaded file for an attachment field.
type AttachmentValue struct {
	fieldID    id.FieldID
	attachment Attachment
}

func (v AttachmentValue) FieldID() id.FieldID    { return v.fieldID }
func (v AttachmentValue) fieldType() FieldType   { return FieldTypeAttachment }
func (v AttachmentValue) Attachment() Attachment { return v.attachment }

func newNumberValue(fieldID id.FieldID, value *float64) NumberValue {
	if value == nil {
		return NumberValue{fieldID: fieldID}
	}
	v := *value
	return NumberValue{fieldID: fieldID, value: &v}
}
