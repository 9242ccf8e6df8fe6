package models_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

type PeriodSuite struct {
	suite.Suite
	person id.PersonID
}

func TestPeriodSuite(t *testing.T) {
	suite.Run(t, new(PeriodSuite))
}

func (s *PeriodSuite) SetupTest() {
	s.person = newPersonID()
}

func (s *PeriodSuite) newPeriod(status models.PeriodStatus) *models.PreservationPeriod {
	p, err := models.NewPreservationPeriod(id.NewPeriodID(), status, t0.Add(2*week))
	s.Require().NoError(err)
	return p
}

func (s *PeriodSuite) TestConstruction() {
	s.Run("accepts open statuses", func() {
		for _, status := range []models.PeriodStatus{models.PeriodStatusNeedsUserInput, models.PeriodStatusReadyToBePreserved} {
			p := s.newPeriod(status)
			s.Equal(status, p.Status())
			s.Equal(t0.Add(2*week), p.DueTimeUtc())
			_, preserved := p.PreservationRecord()
			s.False(preserved)
		}
	})

	s.Run("rejects preserved and unknown statuses", func() {
		for _, status := range []models.PeriodStatus{models.PeriodStatusPreserved, "bogus", ""} {
			_, err := models.NewPreservationPeriod(id.NewPeriodID(), status, t0)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidState), "status %q", status)
		}
	})
}

func (s *PeriodSuite) TestRecording() {
	s.Run("recording the same checkbox twice keeps one value", func() {
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)
		cb := field(models.FieldTypeCheckBox)

		s.Require().NoError(p.RecordCheckBoxValue(cb, true))
		s.Require().NoError(p.RecordCheckBoxValue(cb, true))

		s.Len(p.FieldValues(), 1)
		v, ok := p.GetFieldValue(cb.ID)
		s.Require().True(ok)
		s.IsType(models.CheckBoxChecked{}, v)
	})

	s.Run("unchecking clears the field", func() {
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)
		cb := field(models.FieldTypeCheckBox)

		s.Require().NoError(p.RecordCheckBoxValue(cb, true))
		s.Require().NoError(p.RecordCheckBoxValue(cb, false))

		_, ok := p.GetFieldValue(cb.ID)
		s.False(ok)
	})

	s.Run("N/A replaces an earlier reading", func() {
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)
		num := field(models.FieldTypeNumber)

		s.Require().NoError(p.RecordNumberValue(num, ptr(12.5)))
		s.Require().NoError(p.RecordNumberIsNA(num))

		s.Len(p.FieldValues(), 1)
		v, ok := p.GetFieldValue(num.ID)
		s.Require().True(ok)
		nv, isNumber := v.(models.NumberValue)
		s.Require().True(isNumber)
		s.True(nv.IsNA())
	})

	s.Run("a nil reading clears the field, unlike N/A", func() {
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)
		num := field(models.FieldTypeNumber)

		s.Require().NoError(p.RecordNumberValue(num, ptr(1)))
		s.Require().NoError(p.RecordNumberValue(num, nil))

		_, ok := p.GetFieldValue(num.ID)
		s.False(ok)
	})

	s.Run("reading is copied", func() {
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)
		num := field(models.FieldTypeNumber)
		reading := ptr(3)

		s.Require().NoError(p.RecordNumberValue(num, reading))
		*reading = 99

		v, _ := p.GetFieldValue(num.ID)
		got, ok := v.(models.NumberValue).Value()
		s.True(ok)
		s.Equal(3.0, got)
	})

	s.Run("attachment replaces an earlier attachment", func() {
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)
		att := field(models.FieldTypeAttachment)
		first := models.Attachment{ID: id.NewAttachmentID(), FileName: "a.png"}
		second := models.Attachment{ID: id.NewAttachmentID(), FileName: "b.png"}

		s.Require().NoError(p.RecordAttachment(att, first))
		s.Require().NoError(p.RecordAttachment(att, second))

		s.Len(p.FieldValues(), 1)
		v, _ := p.GetFieldValue(att.ID)
		s.Equal(second, v.(models.AttachmentValue).Attachment())
	})

	s.Run("wrong field type is rejected", func() {
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)
		err := p.RecordCheckBoxValue(field(models.FieldTypeNumber), true)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Empty(p.FieldValues())
	})

	s.Run("attachment without id is rejected", func() {
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)
		err := p.RecordAttachment(field(models.FieldTypeAttachment), models.Attachment{FileName: "x"})
		s.True(dErrors.HasCode(err, dErrors.CodeMissingRequiredInput))
	})
}

func (s *PeriodSuite) TestUpdateStatus() {
	s.Run("missing input keeps NeedsUserInput", func() {
		cb := field(models.FieldTypeCheckBox)
		def := definition(cb, field(models.FieldTypeInfo))
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)

		s.Require().NoError(p.UpdateStatus(def))
		s.Equal(models.PeriodStatusNeedsUserInput, p.Status())

		s.Require().NoError(p.RecordCheckBoxValue(cb, true))
		s.Require().NoError(p.UpdateStatus(def))
		s.Equal(models.PeriodStatusReadyToBePreserved, p.Status())
	})

	s.Run("all number fields N/A stays NeedsUserInput", func() {
		a, b := field(models.FieldTypeNumber), field(models.FieldTypeNumber)
		def := definition(a, b)
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)

		s.Require().NoError(p.RecordNumberIsNA(a))
		s.Require().NoError(p.RecordNumberIsNA(b))
		s.Require().NoError(p.UpdateStatus(def))

		s.Equal(models.PeriodStatusNeedsUserInput, p.Status())
	})

	s.Run("one reading among N/A makes the period ready", func() {
		a, b := field(models.FieldTypeNumber), field(models.FieldTypeNumber)
		def := definition(a, b)
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)

		s.Require().NoError(p.RecordNumberIsNA(a))
		s.Require().NoError(p.RecordNumberValue(b, ptr(0)))
		s.Require().NoError(p.UpdateStatus(def))

		s.Equal(models.PeriodStatusReadyToBePreserved, p.Status())
	})

	s.Run("clearing a value drops back to NeedsUserInput", func() {
		cb := field(models.FieldTypeCheckBox)
		def := definition(cb)
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)

		s.Require().NoError(p.RecordCheckBoxValue(cb, true))
		s.Require().NoError(p.UpdateStatus(def))
		s.Require().NoError(p.RecordCheckBoxValue(cb, false))
		s.Require().NoError(p.UpdateStatus(def))

		s.Equal(models.PeriodStatusNeedsUserInput, p.Status())
	})

	s.Run("voided fields are ignored", func() {
		voided := field(models.FieldTypeCheckBox)
		voided.IsVoided = true
		def := definition(voided, field(models.FieldTypeInfo))
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)

		s.Require().NoError(p.UpdateStatus(def))
		s.Equal(models.PeriodStatusReadyToBePreserved, p.Status())
	})

	s.Run("requires a definition", func() {
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)
		s.True(dErrors.HasCode(p.UpdateStatus(nil), dErrors.CodeMissingRequiredInput))
	})
}

func (s *PeriodSuite) TestPreserve() {
	s.Run("creates an immutable record", func() {
		p := s.newPeriod(models.PeriodStatusReadyToBePreserved)
		at := t0.Add(week)

		s.Require().NoError(p.Preserve(s.person, true, at))

		s.Equal(models.PeriodStatusPreserved, p.Status())
		rec, ok := p.PreservationRecord()
		s.Require().True(ok)
		s.Equal(models.PreservationRecord{PreservedBy: s.person, BulkPreserved: true, PreservedAtUtc: at}, rec)
	})

	s.Run("a preserved period rejects every mutation", func() {
		p := s.newPeriod(models.PeriodStatusReadyToBePreserved)
		s.Require().NoError(p.Preserve(s.person, false, t0))

		s.True(dErrors.HasCode(p.Preserve(s.person, false, t0), dErrors.CodeInvalidState))
		s.True(dErrors.HasCode(p.RecordCheckBoxValue(field(models.FieldTypeCheckBox), true), dErrors.CodeInvalidState))
		s.True(dErrors.HasCode(p.RecordNumberIsNA(field(models.FieldTypeNumber)), dErrors.CodeInvalidState))
		s.True(dErrors.HasCode(p.SetComment("late"), dErrors.CodeInvalidState))
		_, err := p.Reschedule(1, models.RescheduleLater)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("rejects a period that needs input", func() {
		p := s.newPeriod(models.PeriodStatusNeedsUserInput)
		s.True(dErrors.HasCode(p.Preserve(s.person, false, t0), dErrors.CodeInvalidState))
	})

	s.Run("requires a person", func() {
		p := s.newPeriod(models.PeriodStatusReadyToBePreserved)
		s.True(dErrors.HasCode(p.Preserve(id.PersonID{}, false, t0), dErrors.CodeMissingRequiredInput))
	})
}

func (s *PeriodSuite) TestComment() {
	p := s.newPeriod(models.PeriodStatusNeedsUserInput)

	s.Require().NoError(p.SetComment(strings.Repeat("å", models.CommentLengthMax)))
	err := p.SetComment(strings.Repeat("a", models.CommentLengthMax+1))
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Len([]rune(p.Comment()), models.CommentLengthMax)
}

func (s *PeriodSuite) TestReschedule() {
	p := s.newPeriod(models.PeriodStatusNeedsUserInput)

	due, err := p.Reschedule(3, models.RescheduleLater)
	s.Require().NoError(err)
	s.Equal(t0.Add(5*week), due)

	due, err = p.Reschedule(4, models.RescheduleEarlier)
	s.Require().NoError(err)
	s.Equal(t0.Add(week), due)

	_, err = p.Reschedule(0, models.RescheduleLater)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	_, err = p.Reschedule(1, "sideways")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}
