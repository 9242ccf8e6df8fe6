package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "preservation/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseTagID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseTagID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseTagID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseTagID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, TagID(validUUID), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
func TestTypeDistinction(t *testing.T) {
	tagID := TagID(uuid.New())
	requirementID := RequirementID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ TagID = requirementID
	// var _ RequirementID = tagID

	assert.NotEqual(t, uuid.UUID(tagID), uuid.UUID(requirementID))
}

func TestParseID_BoundaryInputs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE tags;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePersonID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	invalidInputs := []string{"", "invalid", uuid.Nil.String()}

	parsers := map[string]func(string) error{
		"project":     func(s string) error { _, err := ParseProjectID(s); return err },
		"tag":         func(s string) error { _, err := ParseTagID(s); return err },
		"requirement": func(s string) error { _, err := ParseRequirementID(s); return err },
		"definition":  func(s string) error { _, err := ParseRequirementDefinitionID(s); return err },
		"field":       func(s string) error { _, err := ParseFieldID(s); return err },
		"person":      func(s string) error { _, err := ParsePersonID(s); return err },
		"journey":     func(s string) error { _, err := ParseJourneyID(s); return err },
		"step":        func(s string) error { _, err := ParseStepID(s); return err },
	}

	for name, parse := range parsers {
		t.Run(name+" accepts valid UUID", func(t *testing.T) {
			require.NoError(t, parse(validUUID))
		})
		for _, input := range invalidInputs {
			t.Run(name+" rejects "+input, func(t *testing.T) {
				require.Error(t, parse(input))
			})
		}
	}
}

func TestIDs_JSONAsString(t *testing.T) {
	tagID := NewTagID()
	fieldID := FieldID(uuid.New())

	raw, err := json.Marshal(map[FieldID]TagID{fieldID: tagID})
	require.NoError(t, err)
	assert.Contains(t, string(raw), tagID.String())
	assert.Contains(t, string(raw), fieldID.String())

	var decoded map[FieldID]TagID
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, tagID, decoded[fieldID])
}
