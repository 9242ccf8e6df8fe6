package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"preservation/internal/preservation/models"
	"preservation/internal/preservation/service"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
	"preservation/pkg/platform/httputil"
	"preservation/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service is the preservation API the handlers delegate to.
type Service interface {
	CreateTag(ctx context.Context, cmd service.CreateTagCommand) (*models.Tag, error)
	UpdateRemark(ctx context.Context, tagID id.TagID, remark, storageArea string) (*models.Tag, error)
	VoidTag(ctx context.Context, tagID id.TagID) error
	UnvoidTag(ctx context.Context, tagID id.TagID) error

	StartPreservation(ctx context.Context, tagIDs []id.TagID) error
	UndoStartPreservation(ctx context.Context, tagIDs []id.TagID) error
	Preserve(ctx context.Context, tagID id.TagID) error
	PreserveRequirement(ctx context.Context, tagID id.TagID, requirementID id.RequirementID) error
	BulkPreserve(ctx context.Context, tagIDs []id.TagID) error
	Transfer(ctx context.Context, tagIDs []id.TagID) error
	CompletePreservation(ctx context.Context, tagIDs []id.TagID) error
	Reschedule(ctx context.Context, tagIDs []id.TagID, weeks int, direction models.RescheduleDirection) error

	RecordValues(ctx context.Context, tagID id.TagID, requirementID id.RequirementID, values models.RecordedValues) error
	RecordAttachment(ctx context.Context, tagID id.TagID, requirementID id.RequirementID, fieldID id.FieldID, attachment models.Attachment) error
	SetRequirementComment(ctx context.Context, tagID id.TagID, requirementID id.RequirementID, comment string) error
	UpdateRequirementInterval(ctx context.Context, tagID id.TagID, requirementID id.RequirementID, intervalWeeks int) error
	AddRequirement(ctx context.Context, tagID id.TagID, in service.RequirementInput) (id.RequirementID, error)
	VoidRequirement(ctx context.Context, tagID id.TagID, requirementID id.RequirementID) error
	UnvoidRequirement(ctx context.Context, tagID id.TagID, requirementID id.RequirementID) error

	GetTag(ctx context.Context, tagID id.TagID) (*models.Tag, error)
	ListTags(ctx context.Context, projectID id.ProjectID, filter models.TagFilter) ([]*models.Tag, error)
	UpcomingRequirements(ctx context.Context, tagID id.TagID) ([]*models.Requirement, error)
	GetRequirementDetails(ctx context.Context, tagID id.TagID, requirementID id.RequirementID) (*service.RequirementDetails, error)

	DueTags(ctx context.Context, projectID id.ProjectID, limit int) ([]id.TagID, error)
	BulkPreserveDue(ctx context.Context, projectID id.ProjectID, limit int) (*service.BulkResult, error)
	RebuildDueIndex(ctx context.Context, projectID id.ProjectID) (int, error)
}

// Handler serves the preservation HTTP API.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the authenticated routes. The caller installs auth and
// the rest of the middleware chain.
func (h *Handler) Register(r chi.Router) {
	r.Route("/tags", func(r chi.Router) {
		r.Post("/", h.handleCreateTag)
		r.Post("/start", h.handleBatch("start_preservation", h.service.StartPreservation))
		r.Post("/undo-start", h.handleBatch("undo_start_preservation", h.service.UndoStartPreservation))
		r.Post("/bulk-preserve", h.handleBatch("bulk_preserve", h.service.BulkPreserve))
		r.Post("/transfer", h.handleBatch("transfer", h.service.Transfer))
		r.Post("/complete", h.handleBatch("complete_preservation", h.service.CompletePreservation))
		r.Post("/reschedule", h.handleReschedule)

		r.Route("/{tagID}", func(r chi.Router) {
			r.Get("/", h.handleGetTag)
			r.Put("/remark", h.handleUpdateRemark)
			r.Post("/void", h.handleTagCommand("void_tag", h.service.VoidTag))
			r.Post("/unvoid", h.handleTagCommand("unvoid_tag", h.service.UnvoidTag))
			r.Post("/preserve", h.handleTagCommand("preserve", h.service.Preserve))
			r.Get("/upcoming", h.handleUpcoming)
			r.Post("/requirements", h.handleAddRequirement)

			r.Route("/requirements/{requirementID}", func(r chi.Router) {
				r.Get("/", h.handleRequirementDetails)
				r.Post("/preserve", h.handleRequirementCommand("preserve_requirement", h.service.PreserveRequirement))
				r.Post("/void", h.handleRequirementCommand("void_requirement", h.service.VoidRequirement))
				r.Post("/unvoid", h.handleRequirementCommand("unvoid_requirement", h.service.UnvoidRequirement))
				r.Put("/values", h.handleRecordValues)
				r.Put("/comment", h.handleSetComment)
				r.Put("/interval", h.handleUpdateInterval)
				r.Put("/attachments/{fieldID}", h.handleRecordAttachment)
			})
		})
	})

	r.Route("/projects/{projectID}", func(r chi.Router) {
		r.Get("/tags", h.handleListTags)
		r.Get("/due", h.handleDueTags)
		r.Post("/preserve-due", h.handleBulkPreserveDue)
	})
}

// RegisterAdmin mounts maintenance routes. The caller guards them.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/projects/{projectID}/due-index/rebuild", h.handleRebuildDueIndex)
}

// writeError logs and renders a failed command. Client errors log at warn,
// everything else at error.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	attrs := []any{
		"op", op,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	}
	if status := httputil.StatusFor(dErrors.CodeOf(err)); status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", attrs...)
	} else {
		h.logger.WarnContext(ctx, "request rejected", attrs...)
	}
	httputil.WriteError(w, err)
}
