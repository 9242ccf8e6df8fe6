package handler

import (
	"time"

	"preservation/internal/preservation/models"
	"preservation/internal/preservation/service"
	id "preservation/pkg/domain"
)

type requirementInputRequest struct {
	DefinitionID  string `json:"definition_id"`
	IntervalWeeks int    `json:"interval_weeks"`
}

type createTagRequest struct {
	ProjectID    string                    `json:"project_id"`
	Type         models.TagType            `json:"type"`
	TagNo        string                    `json:"tag_no"`
	Description  string                    `json:"description"`
	Remark       string                    `json:"remark"`
	StorageArea  string                    `json:"storage_area"`
	StepID       string                    `json:"step_id"`
	Requirements []requirementInputRequest `json:"requirements"`
}

type tagIDsRequest struct {
	TagIDs []string `json:"tag_ids"`
}

type rescheduleRequest struct {
	TagIDs    []string                   `json:"tag_ids"`
	Weeks     int                        `json:"weeks"`
	Direction models.RescheduleDirection `json:"direction"`
}

type remarkRequest struct {
	Remark      string `json:"remark"`
	StorageArea string `json:"storage_area"`
}

type recordValuesRequest struct {
	CheckBoxes map[string]bool     `json:"checkboxes"`
	Numbers    map[string]*float64 `json:"numbers"`
	NumbersNA  []string            `json:"numbers_na"`
	Comment    *string             `json:"comment"`
}

type commentRequest struct {
	Comment string `json:"comment"`
}

type intervalRequest struct {
	IntervalWeeks int `json:"interval_weeks"`
}

type attachmentRequest struct {
	FileName string `json:"file_name"`
	BlobPath string `json:"blob_path"`
}

type preservationRecordResponse struct {
	PreservedBy    string    `json:"preserved_by"`
	BulkPreserved  bool      `json:"bulk_preserved"`
	PreservedAtUtc time.Time `json:"preserved_at_utc"`
}

type periodResponse struct {
	ID         string                      `json:"id"`
	Status     models.PeriodStatus         `json:"status"`
	DueTimeUtc time.Time                   `json:"due_time_utc"`
	Comment    string                      `json:"comment,omitempty"`
	Record     *preservationRecordResponse `json:"preservation_record,omitempty"`
}

type requirementResponse struct {
	ID                 string                  `json:"id"`
	DefinitionID       string                  `json:"definition_id"`
	IntervalWeeks      int                     `json:"interval_weeks"`
	Usage              models.RequirementUsage `json:"usage"`
	IsVoided           bool                    `json:"is_voided"`
	NextDueTimeUtc     *time.Time              `json:"next_due_time_utc,omitempty"`
	NextDueWeeks       *int                    `json:"next_due_weeks,omitempty"`
	ReadyToBePreserved bool                    `json:"ready_to_be_preserved"`
	ActivePeriod       *periodResponse         `json:"active_period,omitempty"`
	PreservedPeriods   int                     `json:"preserved_periods"`
}

type tagResponse struct {
	ID                 string                `json:"id"`
	ProjectID          string                `json:"project_id"`
	Type               models.TagType        `json:"type"`
	TagNo              string                `json:"tag_no"`
	Description        string                `json:"description"`
	Remark             string                `json:"remark,omitempty"`
	StorageArea        string                `json:"storage_area,omitempty"`
	Status             models.TagStatus      `json:"status"`
	StepID             string                `json:"step_id"`
	IsVoided           bool                  `json:"is_voided"`
	NextDueTimeUtc     *time.Time            `json:"next_due_time_utc,omitempty"`
	ReadyToBePreserved bool                  `json:"ready_to_be_preserved"`
	Version            int64                 `json:"version"`
	CreatedAt          time.Time             `json:"created_at"`
	ModifiedAt         time.Time             `json:"modified_at"`
	Requirements       []requirementResponse `json:"requirements"`
}

type tagListResponse struct {
	Tags []tagResponse `json:"tags"`
}

type fieldValueResponse struct {
	Checked    *bool              `json:"checked,omitempty"`
	Number     *float64           `json:"number,omitempty"`
	IsNA       bool               `json:"is_na,omitempty"`
	Attachment *models.Attachment `json:"attachment,omitempty"`
}

type fieldDetailsResponse struct {
	ID           string              `json:"id"`
	Label        string              `json:"label"`
	Unit         string              `json:"unit,omitempty"`
	Type         models.FieldType    `json:"type"`
	ShowPrevious bool                `json:"show_previous"`
	Current      *fieldValueResponse `json:"current,omitempty"`
	Previous     *fieldValueResponse `json:"previous,omitempty"`
}

type requirementDetailsResponse struct {
	TagID              string                 `json:"tag_id"`
	RequirementID      string                 `json:"requirement_id"`
	Title              string                 `json:"title"`
	IntervalWeeks      int                    `json:"interval_weeks"`
	Comment            string                 `json:"comment,omitempty"`
	NextDueWeeks       *int                   `json:"next_due_weeks,omitempty"`
	ReadyToBePreserved bool                   `json:"ready_to_be_preserved"`
	Fields             []fieldDetailsResponse `json:"fields"`
}

type addRequirementResponse struct {
	ID string `json:"id"`
}

type dueTagsResponse struct {
	TagIDs []string `json:"tag_ids"`
}

type bulkResultResponse struct {
	Preserved []string `json:"preserved"`
	Skipped   []string `json:"skipped"`
}

type rebuildResponse struct {
	Indexed int `json:"indexed"`
}

func toTagResponse(t *models.Tag, now time.Time) tagResponse {
	resp := tagResponse{
		ID:                 t.ID().String(),
		ProjectID:          t.ProjectID().String(),
		Type:               t.Type(),
		TagNo:              t.TagNo(),
		Description:        t.Description(),
		Remark:             t.Remark(),
		StorageArea:        t.StorageArea(),
		Status:             t.Status(),
		StepID:             t.StepID().String(),
		IsVoided:           t.IsVoided(),
		ReadyToBePreserved: t.IsReadyToBePreserved(now),
		Version:            t.Version(),
		CreatedAt:          t.CreatedAt(),
		ModifiedAt:         t.ModifiedAt(),
	}
	if due, ok := t.NextDueTimeUtc(); ok {
		resp.NextDueTimeUtc = &due
	}
	ordered := t.OrderedRequirements()
	resp.Requirements = make([]requirementResponse, 0, len(ordered))
	for _, r := range ordered {
		resp.Requirements = append(resp.Requirements, toRequirementResponse(r, now))
	}
	return resp
}

func toRequirementResponse(r *models.Requirement, now time.Time) requirementResponse {
	resp := requirementResponse{
		ID:                 r.ID().String(),
		DefinitionID:       r.RequirementDefinitionID().String(),
		IntervalWeeks:      r.IntervalWeeks(),
		Usage:              r.Usage(),
		IsVoided:           r.IsVoided(),
		ReadyToBePreserved: r.ReadyToBePreserved(),
	}
	if due, ok := r.NextDueTimeUtc(); ok {
		resp.NextDueTimeUtc = &due
	}
	if weeks, ok := r.GetNextDueInWeeks(now); ok {
		resp.NextDueWeeks = &weeks
	}
	for _, p := range r.Periods() {
		if p.Status() == models.PeriodStatusPreserved {
			resp.PreservedPeriods++
		}
	}
	if p, ok := r.ActivePeriod(); ok {
		resp.ActivePeriod = toPeriodResponse(p)
	}
	return resp
}

func toPeriodResponse(p *models.PreservationPeriod) *periodResponse {
	resp := &periodResponse{
		ID:         p.ID().String(),
		Status:     p.Status(),
		DueTimeUtc: p.DueTimeUtc(),
		Comment:    p.Comment(),
	}
	if rec, ok := p.PreservationRecord(); ok {
		resp.Record = &preservationRecordResponse{
			PreservedBy:    rec.PreservedBy.String(),
			BulkPreserved:  rec.BulkPreserved,
			PreservedAtUtc: rec.PreservedAtUtc,
		}
	}
	return resp
}

func toFieldValueResponse(v models.FieldValue) *fieldValueResponse {
	switch fv := v.(type) {
	case models.CheckBoxChecked:
		checked := true
		return &fieldValueResponse{Checked: &checked}
	case models.NumberValue:
		if n, ok := fv.Value(); ok {
			return &fieldValueResponse{Number: &n}
		}
		return &fieldValueResponse{IsNA: true}
	case models.AttachmentValue:
		att := fv.Attachment()
		return &fieldValueResponse{Attachment: &att}
	default:
		return nil
	}
}

func toRequirementDetailsResponse(d *service.RequirementDetails) requirementDetailsResponse {
	resp := requirementDetailsResponse{
		TagID:              d.TagID.String(),
		RequirementID:      d.Requirement.ID().String(),
		IntervalWeeks:      d.Requirement.IntervalWeeks(),
		Comment:            d.Comment,
		NextDueWeeks:       d.NextDueInWeeks,
		ReadyToBePreserved: d.ReadyToBePreserved,
		Fields:             make([]fieldDetailsResponse, 0, len(d.Fields)),
	}
	if d.Definition != nil {
		resp.Title = d.Definition.Title
	}
	for _, f := range d.Fields {
		resp.Fields = append(resp.Fields, fieldDetailsResponse{
			ID:           f.Field.ID.String(),
			Label:        f.Field.Label,
			Unit:         f.Field.Unit,
			Type:         f.Field.Type,
			ShowPrevious: f.Field.ShowPrevious,
			Current:      toFieldValueResponse(f.Current),
			Previous:     toFieldValueResponse(f.Previous),
		})
	}
	return resp
}

func tagIDStrings(ids []id.TagID) []string {
	out := make([]string, 0, len(ids))
	for _, t := range ids {
		out = append(out, t.String())
	}
	return out
}
