package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	"preservation/pkg/platform/httputil"
)

func requirementParams(r *http.Request) (id.TagID, id.RequirementID, error) {
	tagID, err := id.ParseTagID(chi.URLParam(r, "tagID"))
	if err != nil {
		return id.TagID{}, id.RequirementID{}, err
	}
	requirementID, err := id.ParseRequirementID(chi.URLParam(r, "requirementID"))
	if err != nil {
		return id.TagID{}, id.RequirementID{}, err
	}
	return tagID, requirementID, nil
}

// handleRequirementCommand adapts a requirement command without a body.
func (h *Handler) handleRequirementCommand(op string, fn func(ctx context.Context, tagID id.TagID, requirementID id.RequirementID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tagID, requirementID, err := requirementParams(r)
		if err != nil {
			h.writeError(ctx, w, op, err)
			return
		}
		if err := fn(ctx, tagID, requirementID); err != nil {
			h.writeError(ctx, w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) handleAddRequirement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagID, err := id.ParseTagID(chi.URLParam(r, "tagID"))
	if err != nil {
		h.writeError(ctx, w, "add_requirement", err)
		return
	}
	var req requirementInputRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "add_requirement", err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.writeError(ctx, w, "add_requirement", err)
		return
	}
	requirementID, err := h.service.AddRequirement(ctx, tagID, in)
	if err != nil {
		h.writeError(ctx, w, "add_requirement", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, addRequirementResponse{ID: requirementID.String()})
}

func (h *Handler) handleRequirementDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagID, requirementID, err := requirementParams(r)
	if err != nil {
		h.writeError(ctx, w, "requirement_details", err)
		return
	}
	details, err := h.service.GetRequirementDetails(ctx, tagID, requirementID)
	if err != nil {
		h.writeError(ctx, w, "requirement_details", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRequirementDetailsResponse(details))
}

func (h *Handler) handleRecordValues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagID, requirementID, err := requirementParams(r)
	if err != nil {
		h.writeError(ctx, w, "record_values", err)
		return
	}
	var req recordValuesRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "record_values", err)
		return
	}
	values, err := req.toValues()
	if err != nil {
		h.writeError(ctx, w, "record_values", err)
		return
	}
	if err := h.service.RecordValues(ctx, tagID, requirementID, values); err != nil {
		h.writeError(ctx, w, "record_values", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req recordValuesRequest) toValues() (models.RecordedValues, error) {
	values := models.RecordedValues{Comment: req.Comment}
	if len(req.CheckBoxes) > 0 {
		values.CheckBoxes = make(map[id.FieldID]bool, len(req.CheckBoxes))
		for raw, checked := range req.CheckBoxes {
			fieldID, err := id.ParseFieldID(raw)
			if err != nil {
				return models.RecordedValues{}, err
			}
			values.CheckBoxes[fieldID] = checked
		}
	}
	if len(req.Numbers) > 0 {
		values.Numbers = make(map[id.FieldID]*float64, len(req.Numbers))
		for raw, n := range req.Numbers {
			fieldID, err := id.ParseFieldID(raw)
			if err != nil {
				return models.RecordedValues{}, err
			}
			values.Numbers[fieldID] = n
		}
	}
	for _, raw := range req.NumbersNA {
		fieldID, err := id.ParseFieldID(raw)
		if err != nil {
			return models.RecordedValues{}, err
		}
		values.NumbersNA = append(values.NumbersNA, fieldID)
	}
	return values, nil
}

func (h *Handler) handleSetComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagID, requirementID, err := requirementParams(r)
	if err != nil {
		h.writeError(ctx, w, "set_requirement_comment", err)
		return
	}
	var req commentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "set_requirement_comment", err)
		return
	}
	if err := h.service.SetRequirementComment(ctx, tagID, requirementID, req.Comment); err != nil {
		h.writeError(ctx, w, "set_requirement_comment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateInterval(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagID, requirementID, err := requirementParams(r)
	if err != nil {
		h.writeError(ctx, w, "update_requirement_interval", err)
		return
	}
	var req intervalRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "update_requirement_interval", err)
		return
	}
	if err := h.service.UpdateRequirementInterval(ctx, tagID, requirementID, req.IntervalWeeks); err != nil {
		h.writeError(ctx, w, "update_requirement_interval", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRecordAttachment stores a reference to an already uploaded blob.
// Upload itself is out of scope; the blob path is opaque.
func (h *Handler) handleRecordAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagID, requirementID, err := requirementParams(r)
	if err != nil {
		h.writeError(ctx, w, "record_attachment", err)
		return
	}
	fieldID, err := id.ParseFieldID(chi.URLParam(r, "fieldID"))
	if err != nil {
		h.writeError(ctx, w, "record_attachment", err)
		return
	}
	var req attachmentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "record_attachment", err)
		return
	}
	attachment := models.Attachment{
		ID:       id.NewAttachmentID(),
		FileName: req.FileName,
		BlobPath: req.BlobPath,
	}
	if err := h.service.RecordAttachment(ctx, tagID, requirementID, fieldID, attachment); err != nil {
		h.writeError(ctx, w, "record_attachment", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, attachment)
}
