package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

type RequirementSuite struct {
	suite.Suite
	person id.PersonID
}

func TestRequirementSuite(t *testing.T) {
	suite.Run(t, new(RequirementSuite))
}

func (s *RequirementSuite) SetupTest() {
	s.person = newPersonID()
}

func (s *RequirementSuite) TestConstruction() {
	s.Run("initial period status follows the definition", func() {
		r := mustRequirement(2, infoDefinition())
		s.Equal(models.PeriodStatusReadyToBePreserved, r.InitialPeriodStatus())

		r = mustRequirement(2, definition(field(models.FieldTypeCheckBox)))
		s.Equal(models.PeriodStatusNeedsUserInput, r.InitialPeriodStatus())
	})

	s.Run("rejects missing definition", func() {
		_, err := models.NewRequirement(id.NewRequirementID(), 2, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeMissingRequiredInput))
	})

	s.Run("rejects non-positive interval", func() {
		_, err := models.NewRequirement(id.NewRequirementID(), 0, infoDefinition())
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("starts without periods or due time", func() {
		r := mustRequirement(2, infoDefinition())
		s.False(r.IsInUse())
		s.False(r.HasActivePeriod())
		_, ok := r.NextDueTimeUtc()
		s.False(ok)
		_, ok = r.GetNextDueInWeeks(t0)
		s.False(ok)
	})
}

func (s *RequirementSuite) TestStartAndPreserveCycle() {
	r := mustRequirement(2, infoDefinition())

	s.Require().NoError(r.StartPreservation(t0))
	due, ok := r.NextDueTimeUtc()
	s.Require().True(ok)
	s.Equal(t0.Add(2*week), due)
	active, _ := r.ActivePeriod()
	s.Equal(models.PeriodStatusReadyToBePreserved, active.Status())

	weeks, _ := r.GetNextDueInWeeks(t0)
	s.Equal(2, weeks)

	dueAt := t0.Add(2 * week)
	s.False(r.IsReadyAndDueToBePreserved(dueAt.Add(-1)))
	s.True(r.IsReadyAndDueToBePreserved(dueAt))
	s.True(r.IsReadyAndDueToBePreserved(dueAt.Add(3 * week)))

	s.Require().NoError(r.Preserve(s.person, false, dueAt))
	next, _ := r.NextDueTimeUtc()
	s.Equal(dueAt.Add(2*week), next)
	s.Len(r.Periods(), 2)
	s.Equal(models.PeriodStatusPreserved, r.Periods()[0].Status())
	s.Equal(models.PeriodStatusReadyToBePreserved, r.Periods()[1].Status())
}

func (s *RequirementSuite) TestDueDateAnchoring() {
	s.Run("late preservation anchors on the action", func() {
		r := mustRequirement(2, infoDefinition())
		s.Require().NoError(r.StartPreservation(t0))

		late := t0.Add(7*week + 3*day)
		s.Require().NoError(r.Preserve(s.person, false, late))

		due, _ := r.NextDueTimeUtc()
		s.Equal(late.Add(2*week), due)
	})

	s.Run("preserving a ready requirement before due anchors on the action", func() {
		r := mustRequirement(4, infoDefinition())
		s.Require().NoError(r.StartPreservation(t0))

		early := t0.Add(week)
		s.False(r.IsReadyAndDueToBePreserved(early))
		s.Require().NoError(r.Preserve(s.person, false, early))

		due, _ := r.NextDueTimeUtc()
		s.Equal(early.Add(4*week), due)
	})
}

func (s *RequirementSuite) TestNextDueInWeeks() {
	r := mustRequirement(2, infoDefinition())
	s.Require().NoError(r.StartPreservation(t0))

	cases := []struct {
		name  string
		after time.Duration
		want  int
	}{
		{"at start", 0, 2},
		{"one day in", day, 2},
		{"one week in", week, 1},
		{"one second before due", 2*week - time.Second, 1},
		{"at due", 2 * week, 0},
		{"one week overdue", 3 * week, -1},
		{"two weeks overdue", 4 * week, -2},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			got, ok := r.GetNextDueInWeeks(t0.Add(tc.after))
			s.True(ok)
			s.Equal(tc.want, got)
		})
	}
}

func (s *RequirementSuite) TestStartPreservationTwiceFails() {
	r := mustRequirement(2, infoDefinition())
	s.Require().NoError(r.StartPreservation(t0))

	err := r.StartPreservation(t0.Add(week))
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	s.Len(r.Periods(), 1)
}

func (s *RequirementSuite) TestUndoStartPreservation() {
	r := mustRequirement(2, infoDefinition())
	s.Require().NoError(r.StartPreservation(t0))

	r.UndoStartPreservation()

	_, ok := r.NextDueTimeUtc()
	s.False(ok)
	s.Len(r.Periods(), 1, "history is kept")
	s.False(r.IsReadyAndDueToBePreserved(t0.Add(10 * week)))

	s.Run("restart re-anchors the open period", func() {
		restart := t0.Add(5 * week)
		s.Require().NoError(r.StartPreservation(restart))
		s.Len(r.Periods(), 1)
		due, _ := r.NextDueTimeUtc()
		s.Equal(restart.Add(2*week), due)
	})
}

func (s *RequirementSuite) TestCompletePreservation() {
	r := mustRequirement(2, infoDefinition())
	s.Require().NoError(r.StartPreservation(t0))

	r.CompletePreservation()

	_, ok := r.NextDueTimeUtc()
	s.False(ok)
	s.False(r.IsReadyAndDueToBePreserved(t0.Add(52 * week)))
}

func (s *RequirementSuite) TestReschedule() {
	r := mustRequirement(2, infoDefinition())

	s.Run("requires an active period", func() {
		s.True(dErrors.HasCode(r.Reschedule(1, models.RescheduleLater), dErrors.CodeInvalidState))
	})

	s.Require().NoError(r.StartPreservation(t0))
	s.Require().NoError(r.Reschedule(1, models.RescheduleLater))
	due, _ := r.NextDueTimeUtc()
	s.Equal(t0.Add(3*week), due)

	s.Require().NoError(r.Reschedule(2, models.RescheduleEarlier))
	due, _ = r.NextDueTimeUtc()
	s.Equal(t0.Add(week), due)
}

func (s *RequirementSuite) TestUpdateInterval() {
	s.Run("recomputes from the period's anchor", func() {
		r := mustRequirement(2, infoDefinition())
		s.Require().NoError(r.StartPreservation(t0))
		late := t0.Add(5 * week)
		s.Require().NoError(r.Preserve(s.person, false, late))

		s.Require().NoError(r.UpdateInterval(6))

		due, _ := r.NextDueTimeUtc()
		s.Equal(late.Add(6*week), due)
		s.Equal(6, r.IntervalWeeks())
	})

	s.Run("before start only changes the interval", func() {
		r := mustRequirement(2, infoDefinition())
		s.Require().NoError(r.UpdateInterval(3))
		_, ok := r.NextDueTimeUtc()
		s.False(ok)

		s.Require().NoError(r.StartPreservation(t0))
		due, _ := r.NextDueTimeUtc()
		s.Equal(t0.Add(3*week), due)
	})

	s.Run("rejects non-positive interval", func() {
		r := mustRequirement(2, infoDefinition())
		s.True(dErrors.HasCode(r.UpdateInterval(0), dErrors.CodeValidation))
		s.Equal(2, r.IntervalWeeks())
	})
}

func (s *RequirementSuite) TestRecordValues() {
	cb := field(models.FieldTypeCheckBox)
	num := field(models.FieldTypeNumber)
	def := definition(cb, num)

	s.Run("ready once every input is recorded", func() {
		r := mustRequirement(2, def)
		s.Require().NoError(r.StartPreservation(t0))

		s.Require().NoError(r.RecordCheckBoxValues(map[id.FieldID]bool{cb.ID: true}, def))
		s.False(r.ReadyToBePreserved())

		s.Require().NoError(r.RecordNumberValues(map[id.FieldID]*float64{num.ID: ptr(42)}, def))
		s.True(r.ReadyToBePreserved())
	})

	s.Run("N/A only numbers keep the requirement waiting for input", func() {
		r := mustRequirement(2, def)
		s.Require().NoError(r.StartPreservation(t0))

		s.Require().NoError(r.RecordValues(models.RecordedValues{
			CheckBoxes: map[id.FieldID]bool{cb.ID: true},
			NumbersNA:  []id.FieldID{num.ID},
		}, def))

		s.False(r.ReadyToBePreserved())
		s.True(dErrors.HasCode(r.Preserve(s.person, false, t0.Add(2*week)), dErrors.CodeNotReady))
	})

	s.Run("an invalid part leaves the period untouched", func() {
		r := mustRequirement(2, def)
		s.Require().NoError(r.StartPreservation(t0))

		err := r.RecordValues(models.RecordedValues{
			CheckBoxes: map[id.FieldID]bool{cb.ID: true},
			Numbers:    map[id.FieldID]*float64{cb.ID: ptr(1)},
		}, def)

		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		_, recorded := r.GetCurrentFieldValue(cb.ID)
		s.False(recorded)
	})

	s.Run("unknown field is rejected", func() {
		r := mustRequirement(2, def)
		s.Require().NoError(r.StartPreservation(t0))

		err := r.RecordCheckBoxValues(map[id.FieldID]bool{newFieldID(): true}, def)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("definition must match", func() {
		r := mustRequirement(2, def)
		s.Require().NoError(r.StartPreservation(t0))

		err := r.RecordCheckBoxValues(map[id.FieldID]bool{cb.ID: true}, definition(cb))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("requires an active period", func() {
		r := mustRequirement(2, def)
		err := r.RecordCheckBoxValues(map[id.FieldID]bool{cb.ID: true}, def)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("comment is recorded with the values", func() {
		r := mustRequirement(2, def)
		s.Require().NoError(r.StartPreservation(t0))
		comment := "desiccant replaced"

		s.Require().NoError(r.RecordValues(models.RecordedValues{Comment: &comment}, def))
		s.Equal(comment, r.GetCurrentComment())
	})
}

func (s *RequirementSuite) TestRecordAttachment() {
	att := field(models.FieldTypeAttachment)
	def := definition(att)
	r := mustRequirement(2, def)
	s.Require().NoError(r.StartPreservation(t0))
	file := models.Attachment{ID: id.NewAttachmentID(), FileName: "photo.jpg", BlobPath: "tags/photo.jpg"}

	s.Require().NoError(r.RecordAttachment(att.ID, file, def))

	s.True(r.ReadyToBePreserved())
	v, ok := r.GetCurrentFieldValue(att.ID)
	s.Require().True(ok)
	s.Equal(file, v.(models.AttachmentValue).Attachment())
}

func (s *RequirementSuite) TestPreviousFieldValue() {
	num := field(models.FieldTypeNumber)
	num.ShowPrevious = true
	def := definition(num)
	r := mustRequirement(1, def)
	s.Require().NoError(r.StartPreservation(t0))

	_, ok := r.GetPreviousFieldValue(num)
	s.False(ok, "nothing preserved yet")

	record := func(v float64, at int) {
		s.Require().NoError(r.RecordNumberValues(map[id.FieldID]*float64{num.ID: ptr(v)}, def))
		s.Require().NoError(r.Preserve(s.person, false, t0.Add(time.Duration(at)*week)))
	}
	record(10, 1)
	record(20, 2)

	s.Require().NoError(r.RecordNumberValues(map[id.FieldID]*float64{num.ID: ptr(30)}, def))

	prev, ok := r.GetPreviousFieldValue(num)
	s.Require().True(ok)
	got, _ := prev.(models.NumberValue).Value()
	s.Equal(20.0, got)

	cur, ok := r.GetCurrentFieldValue(num.ID)
	s.Require().True(ok)
	got, _ = cur.(models.NumberValue).Value()
	s.Equal(30.0, got)

	s.Run("hidden when the field does not show previous", func() {
		hidden := num
		hidden.ShowPrevious = false
		_, ok := r.GetPreviousFieldValue(hidden)
		s.False(ok)
	})
}

func (s *RequirementSuite) TestPreserveRequiresPerson() {
	r := mustRequirement(2, infoDefinition())
	s.Require().NoError(r.StartPreservation(t0))
	s.True(dErrors.HasCode(r.Preserve(id.PersonID{}, false, t0), dErrors.CodeMissingRequiredInput))
}
