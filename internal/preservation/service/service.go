package service

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"strconv"
	"time"

	"github.com/mssola/useragent"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"preservation/internal/preservation/metrics"
	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
	"preservation/pkg/platform/audit"
	"preservation/pkg/platform/circuit"
	"preservation/pkg/platform/sentinel"
	"preservation/pkg/requestcontext"
)

const tracerName = "preservation/internal/preservation/service"

// Service runs preservation commands against tag aggregates. Every command
// loads its tags, applies the model operation and saves the result inside one
// transaction together with the emitted events.
type Service struct {
	tx          StoreTx
	tags        TagStore
	definitions DefinitionReader
	journeys    JourneyReader
	dueIndex    DueIndex
	breaker     *circuit.Breaker
	clock       Clock
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDueIndex enables the due index. The breaker decides when the index is
// trusted; nil uses a breaker with default thresholds.
func WithDueIndex(index DueIndex, breaker *circuit.Breaker) Option {
	return func(s *Service) {
		s.dueIndex = index
		s.breaker = breaker
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// New constructs a Service. tags serves reads outside a transaction.
func New(tx StoreTx, tags TagStore, definitions DefinitionReader, journeys JourneyReader, opts ...Option) *Service {
	s := &Service{
		tx:          tx,
		tags:        tags,
		definitions: definitions,
		journeys:    journeys,
		clock:       requestcontext.Now,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dueIndex != nil && s.breaker == nil {
		s.breaker = circuit.New("due-index")
	}
	return s
}

// mutate loads tagIDs, applies fn to each tag and saves them in one
// transaction. If fn fails for any tag nothing is saved.
func (s *Service) mutate(ctx context.Context, command string, tagIDs []id.TagID, fn func(t *models.Tag, now time.Time) error) ([]*models.Tag, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "preservation."+command,
		trace.WithAttributes(attribute.Int("tag_count", len(tagIDs))))
	defer span.End()

	tags, err := s.runMutation(ctx, tagIDs, fn)
	s.observeCommand(command, err, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		return nil, err
	}
	return tags, nil
}

func (s *Service) runMutation(ctx context.Context, tagIDs []id.TagID, fn func(t *models.Tag, now time.Time) error) ([]*models.Tag, error) {
	if err := checkTagIDs(tagIDs); err != nil {
		return nil, err
	}
	actor := requestcontext.PersonID(ctx)
	if actor.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "acting person is required")
	}
	now := s.clock(ctx).UTC()

	var (
		saved  []*models.Tag
		events []audit.Event
	)
	err := s.tx.RunInTx(ctx, func(stores TxStores) error {
		tags, err := stores.Tags.FindByIDs(ctx, tagIDs)
		if err != nil {
			return storeError(err, "failed to load tags")
		}
		for _, t := range tags {
			if err := fn(t, now); err != nil {
				return err
			}
		}
		if err := stores.Tags.Save(ctx, tags...); err != nil {
			return storeError(err, "failed to save tags")
		}
		events = events[:0]
		for _, t := range tags {
			for _, e := range t.PullEvents() {
				ev := s.auditEvent(ctx, t, e, actor)
				if err := stores.Audit.Append(ctx, ev); err != nil {
					return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append event")
				}
				events = append(events, ev)
			}
		}
		saved = tags
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshDueIndex(ctx, saved)
	for _, ev := range events {
		s.logAudit(ctx, ev.Action, "tag_id", ev.AggregateID, "person_id", ev.ActorID)
	}
	return saved, nil
}

// auditEvent converts a tag event into an outbox event. The acting person is
// used unless the event names who preserved.
func (s *Service) auditEvent(ctx context.Context, t *models.Tag, e models.Event, actor id.PersonID) audit.Event {
	attrs := maps.Clone(e.Attributes)
	if attrs == nil {
		attrs = make(map[string]string, 2)
	}
	attrs["project_id"] = t.ProjectID().String()
	if !e.RequirementID.IsNil() {
		attrs["requirement_id"] = e.RequirementID.String()
	}
	clientAttributes(attrs, requestcontext.UserAgent(ctx))
	by := actor
	if !e.PersonID.IsNil() {
		by = e.PersonID
	}
	return audit.Event{
		Timestamp:     e.OccurredAt,
		AggregateType: "tag",
		AggregateID:   e.TagID.String(),
		Action:        string(e.Type),
		ActorID:       by.String(),
		RequestID:     requestcontext.RequestID(ctx),
		Attributes:    attrs,
	}
}

// clientAttributes records the browser and OS of the calling client. Requests
// without a User-Agent, such as worker jobs, add nothing.
func clientAttributes(attrs map[string]string, userAgent string) {
	if userAgent == "" {
		return
	}
	ua := useragent.New(userAgent)
	if ua.Bot() {
		attrs["client_bot"] = "true"
	}
	if name, version := ua.Browser(); name != "" {
		attrs["client_browser"] = name
		if version != "" {
			attrs["client_browser_version"] = version
		}
	}
	if osName := ua.OS(); osName != "" {
		attrs["client_os"] = osName
	}
	attrs["client_mobile"] = strconv.FormatBool(ua.Mobile())
}

func (s *Service) loadTag(ctx context.Context, tagID id.TagID) (*models.Tag, error) {
	if tagID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "tag id is required")
	}
	t, err := s.tags.FindByID(ctx, tagID)
	if err != nil {
		return nil, storeError(err, "failed to load tag")
	}
	return t, nil
}

func (s *Service) loadDefinition(ctx context.Context, definitionID id.RequirementDefinitionID) (*models.RequirementDefinition, error) {
	if definitionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "requirement definition id is required")
	}
	def, err := s.definitions.FindDefinition(ctx, definitionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeMissingRequiredInput,
				"requirement definition "+definitionID.String()+" does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requirement definition")
	}
	return def, nil
}

func checkTagIDs(tagIDs []id.TagID) error {
	if len(tagIDs) == 0 {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "at least one tag is required")
	}
	seen := make(map[id.TagID]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if tagID.IsNil() {
			return dErrors.New(dErrors.CodeMissingRequiredInput, "tag id is required")
		}
		if _, dup := seen[tagID]; dup {
			return dErrors.New(dErrors.CodeInvalidInput, "tag "+tagID.String()+" is listed more than once")
		}
		seen[tagID] = struct{}{}
	}
	return nil
}

// storeError translates store sentinels into domain errors.
func storeError(err error, msg string) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "tag not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "tag was modified by someone else, reload and try again")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, event, args...)
	}
}

func (s *Service) observeCommand(command string, err error, start time.Time) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	s.metrics.ObserveCommand(command, outcome, start)
}
