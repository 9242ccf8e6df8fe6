package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"preservation/internal/preservation/models"
	"preservation/internal/preservation/service"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
	"preservation/pkg/platform/httputil"
	"preservation/pkg/requestcontext"
)

const maxListLimit = 500

func (h *Handler) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createTagRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "create_tag", err)
		return
	}
	cmd, err := req.toCommand()
	if err != nil {
		h.writeError(ctx, w, "create_tag", err)
		return
	}
	tag, err := h.service.CreateTag(ctx, cmd)
	if err != nil {
		h.writeError(ctx, w, "create_tag", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toTagResponse(tag, requestcontext.Now(ctx)))
}

func (req createTagRequest) toCommand() (service.CreateTagCommand, error) {
	projectID, err := id.ParseProjectID(req.ProjectID)
	if err != nil {
		return service.CreateTagCommand{}, err
	}
	stepID, err := id.ParseStepID(req.StepID)
	if err != nil {
		return service.CreateTagCommand{}, err
	}
	inputs := make([]service.RequirementInput, 0, len(req.Requirements))
	for _, in := range req.Requirements {
		parsed, err := in.toInput()
		if err != nil {
			return service.CreateTagCommand{}, err
		}
		inputs = append(inputs, parsed)
	}
	return service.CreateTagCommand{
		ProjectID:    projectID,
		Type:         req.Type,
		TagNo:        req.TagNo,
		Description:  req.Description,
		Remark:       req.Remark,
		StorageArea:  req.StorageArea,
		StepID:       stepID,
		Requirements: inputs,
	}, nil
}

func (in requirementInputRequest) toInput() (service.RequirementInput, error) {
	defID, err := id.ParseRequirementDefinitionID(in.DefinitionID)
	if err != nil {
		return service.RequirementInput{}, err
	}
	return service.RequirementInput{DefinitionID: defID, IntervalWeeks: in.IntervalWeeks}, nil
}

func (h *Handler) handleGetTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagID, err := id.ParseTagID(chi.URLParam(r, "tagID"))
	if err != nil {
		h.writeError(ctx, w, "get_tag", err)
		return
	}
	tag, err := h.service.GetTag(ctx, tagID)
	if err != nil {
		h.writeError(ctx, w, "get_tag", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTagResponse(tag, requestcontext.Now(ctx)))
}

func (h *Handler) handleUpdateRemark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagID, err := id.ParseTagID(chi.URLParam(r, "tagID"))
	if err != nil {
		h.writeError(ctx, w, "update_remark", err)
		return
	}
	var req remarkRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "update_remark", err)
		return
	}
	tag, err := h.service.UpdateRemark(ctx, tagID, req.Remark, req.StorageArea)
	if err != nil {
		h.writeError(ctx, w, "update_remark", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTagResponse(tag, requestcontext.Now(ctx)))
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagID, err := id.ParseTagID(chi.URLParam(r, "tagID"))
	if err != nil {
		h.writeError(ctx, w, "upcoming_requirements", err)
		return
	}
	reqs, err := h.service.UpcomingRequirements(ctx, tagID)
	if err != nil {
		h.writeError(ctx, w, "upcoming_requirements", err)
		return
	}
	now := requestcontext.Now(ctx)
	resp := make([]requirementResponse, 0, len(reqs))
	for _, req := range reqs {
		resp = append(resp, toRequirementResponse(req, now))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"requirements": resp})
}

// handleTagCommand adapts a single-tag command without a body.
func (h *Handler) handleTagCommand(op string, fn func(ctx context.Context, tagID id.TagID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tagID, err := id.ParseTagID(chi.URLParam(r, "tagID"))
		if err != nil {
			h.writeError(ctx, w, op, err)
			return
		}
		if err := fn(ctx, tagID); err != nil {
			h.writeError(ctx, w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleBatch adapts an all-or-nothing command over {"tag_ids": [...]}.
func (h *Handler) handleBatch(op string, fn func(ctx context.Context, tagIDs []id.TagID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req tagIDsRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			h.writeError(ctx, w, op, err)
			return
		}
		tagIDs, err := parseTagIDs(req.TagIDs)
		if err != nil {
			h.writeError(ctx, w, op, err)
			return
		}
		if err := fn(ctx, tagIDs); err != nil {
			h.writeError(ctx, w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) handleReschedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req rescheduleRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "reschedule", err)
		return
	}
	tagIDs, err := parseTagIDs(req.TagIDs)
	if err != nil {
		h.writeError(ctx, w, "reschedule", err)
		return
	}
	if err := h.service.Reschedule(ctx, tagIDs, req.Weeks, req.Direction); err != nil {
		h.writeError(ctx, w, "reschedule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		h.writeError(ctx, w, "list_tags", err)
		return
	}
	filter, err := parseTagFilter(r)
	if err != nil {
		h.writeError(ctx, w, "list_tags", err)
		return
	}
	tags, err := h.service.ListTags(ctx, projectID, filter)
	if err != nil {
		h.writeError(ctx, w, "list_tags", err)
		return
	}
	now := requestcontext.Now(ctx)
	resp := tagListResponse{Tags: make([]tagResponse, 0, len(tags))}
	for _, t := range tags {
		resp.Tags = append(resp.Tags, toTagResponse(t, now))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDueTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		h.writeError(ctx, w, "due_tags", err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		h.writeError(ctx, w, "due_tags", err)
		return
	}
	tagIDs, err := h.service.DueTags(ctx, projectID, limit)
	if err != nil {
		h.writeError(ctx, w, "due_tags", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dueTagsResponse{TagIDs: tagIDStrings(tagIDs)})
}

func (h *Handler) handleBulkPreserveDue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		h.writeError(ctx, w, "bulk_preserve_due", err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		h.writeError(ctx, w, "bulk_preserve_due", err)
		return
	}
	result, err := h.service.BulkPreserveDue(ctx, projectID, limit)
	if err != nil {
		h.writeError(ctx, w, "bulk_preserve_due", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, bulkResultResponse{
		Preserved: tagIDStrings(result.Preserved),
		Skipped:   tagIDStrings(result.Skipped),
	})
}

func (h *Handler) handleRebuildDueIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		h.writeError(ctx, w, "rebuild_due_index", err)
		return
	}
	indexed, err := h.service.RebuildDueIndex(ctx, projectID)
	if err != nil {
		h.writeError(ctx, w, "rebuild_due_index", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rebuildResponse{Indexed: indexed})
}

func parseTagIDs(raw []string) ([]id.TagID, error) {
	tagIDs := make([]id.TagID, 0, len(raw))
	for _, s := range raw {
		tagID, err := id.ParseTagID(s)
		if err != nil {
			return nil, err
		}
		tagIDs = append(tagIDs, tagID)
	}
	return tagIDs, nil
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 || limit > maxListLimit {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "limit must be between 0 and "+strconv.Itoa(maxListLimit))
	}
	return limit, nil
}

// parseTagFilter reads ?status=&due_before=&include_voided=&limit=.
func parseTagFilter(r *http.Request) (models.TagFilter, error) {
	q := r.URL.Query()
	var filter models.TagFilter
	if s := q.Get("status"); s != "" {
		filter.Status = models.TagStatus(s)
		if !filter.Status.IsValid() {
			return filter, dErrors.New(dErrors.CodeInvalidInput, "unknown status "+strconv.Quote(s))
		}
	}
	if s := q.Get("due_before"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, dErrors.New(dErrors.CodeInvalidInput, "due_before must be RFC 3339")
		}
		filter.DueBefore = t.UTC()
	}
	if s := q.Get("include_voided"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return filter, dErrors.New(dErrors.CodeInvalidInput, "include_voided must be a boolean")
		}
		filter.IncludeVoided = v
	}
	limit, err := parseLimit(r)
	if err != nil {
		return filter, err
	}
	filter.Limit = limit
	return filter, nil
}
