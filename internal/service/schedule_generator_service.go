package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classwise/timetabler/internal/catalogstore"
	"github.com/classwise/timetabler/internal/compilecache"
	"github.com/classwise/timetabler/internal/dto"
	"github.com/classwise/timetabler/internal/engine"
	jobstore "github.com/classwise/timetabler/internal/jobs"
	"github.com/classwise/timetabler/internal/metrics"
	"github.com/classwise/timetabler/pkg/config"
	pkgjobs "github.com/classwise/timetabler/pkg/jobs"

	appErrors "github.com/classwise/timetabler/pkg/errors"
)

// catalogSource resolves a CatalogRef to a previously ingested catalog, for
// callers that uploaded a catalog once (via the CSV ingestion endpoint) and
// want to run many generations against it without re-sending every course.
type catalogSource interface {
	CatalogByRef(ctx context.Context, ref string) ([]engine.Course, string, error)
}

// ScheduleGeneratorService adapts generate(catalog, config, options) (§6)
// to the host's async HTTP workflow: requests are validated, converted to
// engine types, and handed to a worker pool that compiles them (optionally
// via the compile cache), runs engine.GenerateFromCompiled, and records the
// outcome in a pollable job store.
type ScheduleGeneratorService struct {
	catalogs  catalogSource
	cache     *compilecache.Cache
	jobs      *jobstore.Store
	queue     *pkgjobs.Queue
	validator *validator.Validate
	metrics   *metrics.Metrics
	logger    *zap.Logger
	defaults  config.GeneratorConfig
}

// NewScheduleGeneratorService wires the generation pipeline.
func NewScheduleGeneratorService(
	catalogs catalogSource,
	cache *compilecache.Cache,
	jobs *jobstore.Store,
	queue *pkgjobs.Queue,
	validate *validator.Validate,
	m *metrics.Metrics,
	logger *zap.Logger,
	defaults config.GeneratorConfig,
) *ScheduleGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGeneratorService{
		catalogs:  catalogs,
		cache:     cache,
		jobs:      jobs,
		queue:     queue,
		validator: validate,
		metrics:   m,
		logger:    logger,
		defaults:  defaults,
	}
}

// AttachQueue binds the worker queue after construction, for callers that
// need the service's Handle method to build the queue itself (queue and
// service are mutually referential: the queue needs Handle, the service
// needs the queue to enqueue jobs).
func (s *ScheduleGeneratorService) AttachQueue(queue *pkgjobs.Queue) {
	s.queue = queue
}

// Submit validates the request, enqueues a generation job, and returns
// immediately with a job id the caller polls via Poll.
func (s *ScheduleGeneratorService) Submit(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule generation payload")
	}
	if len(req.Catalog) == 0 && req.CatalogRef == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "catalog or catalogRef is required")
	}

	catalog, catalogVersion, err := s.resolveCatalog(ctx, req)
	if err != nil {
		return nil, err
	}

	cfg := toConfiguration(req)
	opts := s.toOptions(req)

	id := uuid.NewString()
	s.jobs.Put(jobstore.Record{ID: id, Status: jobstore.StatusQueued, CreatedAt: time.Now().UTC()})

	job := pkgjobs.Job{ID: id, Type: "generate_schedule"}
	job.Payload = generationPayload{catalog: catalog, catalogVersion: catalogVersion, cfg: cfg, opts: opts}
	if err := s.queue.Enqueue(job); err != nil {
		s.jobs.UpdateStatus(id, jobstore.StatusFailed, nil, err, "failed to enqueue")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue generation job")
	}

	return &dto.GenerateScheduleResponse{JobID: id, Status: string(jobstore.StatusQueued)}, nil
}

// generationPayload is the pkgjobs.Job.Payload carried from Submit to
// Handle; it is never serialized, so it can hold the compiled Go types
// directly rather than the wire DTOs.
type generationPayload struct {
	catalog        []engine.Course
	catalogVersion string
	cfg            engine.Configuration
	opts           engine.Options
}

// Handle is the pkgjobs.Handler registered against the queue. It compiles
// the request (or reuses a cached compilation keyed by catalog version and
// configuration), runs the search synchronously on a worker goroutine, and
// records the result.
func (s *ScheduleGeneratorService) Handle(ctx context.Context, job pkgjobs.Job) error {
	payload, ok := job.Payload.(generationPayload)
	if !ok {
		return fmt.Errorf("schedule generator: unexpected job payload type %T", job.Payload)
	}
	s.jobs.UpdateStatus(job.ID, jobstore.StatusRunning, nil, nil, "running")

	start := time.Now()
	key := compilecache.Key(payload.catalogVersion, payload.cfg)
	cc, hit := s.cache.Get(ctx, key)
	s.jobs.SetCacheHit(job.ID, hit)
	if hit {
		s.logger.Debug("compile cache hit", zap.String("job_id", job.ID), zap.String("key", key))
	} else {
		compiled, err := engine.CompileConstraints(payload.catalog, payload.cfg, payload.opts)
		if err != nil {
			err = mapEngineError(err)
			s.metrics.RecordRun(0, true, time.Since(start))
			s.jobs.UpdateStatus(job.ID, jobstore.StatusFailed, nil, err, err.Error())
			s.logger.Warn("schedule compilation failed", zap.String("job_id", job.ID), zap.Error(err))
			return nil
		}
		cc = compiled
		s.cache.Put(ctx, key, cc)
	}

	schedules, err := engine.GenerateFromCompiled(cc, payload.opts)
	duration := time.Since(start)
	if err != nil {
		err = mapEngineError(err)
		s.metrics.RecordRun(0, true, duration)
		s.jobs.UpdateStatus(job.ID, jobstore.StatusFailed, nil, err, err.Error())
		s.logger.Warn("schedule generation failed", zap.String("job_id", job.ID), zap.Error(err))
		return nil // terminal for this job; do not retry a deterministic compile/resolution failure
	}

	s.metrics.RecordRun(len(schedules), false, duration)
	s.jobs.UpdateStatus(job.ID, jobstore.StatusDone, schedules, nil, "completed")
	return nil
}

// Poll reports the current state of a previously submitted job.
func (s *ScheduleGeneratorService) Poll(_ context.Context, jobID string) (*dto.GenerateScheduleResponse, error) {
	record, ok := s.jobs.Get(jobID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found or expired")
	}
	resp := &dto.GenerateScheduleResponse{JobID: record.ID, Status: string(record.Status), CacheHit: record.CacheHit}
	if record.Err != nil {
		resp.Error = record.Err.Error()
	}
	if record.Status == jobstore.StatusDone {
		resp.Schedules = toScheduleViews(record.Schedules)
	}
	return resp, nil
}

// Export returns the raw engine schedules for a completed job, for handlers
// that render them to a download format (internal/export) rather than the
// wire ScheduleView shape.
func (s *ScheduleGeneratorService) Export(_ context.Context, jobID string) ([]engine.Schedule, error) {
	record, ok := s.jobs.Get(jobID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found or expired")
	}
	if record.Status != jobstore.StatusDone {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "job has not completed")
	}
	return record.Schedules, nil
}

// mapEngineError translates the engine's own failure taxonomy onto the
// host's pkg/errors, so a poll response carries the same error codes the
// rest of the API uses.
func mapEngineError(err error) error {
	var engErr *engine.Error
	if !errors.As(err, &engErr) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "schedule generation failed")
	}
	switch engErr.Kind {
	case engine.KindRequirementUnresolved:
		return appErrors.Clone(appErrors.ErrRequirementUnresolved, engErr.Detail)
	case engine.KindRequirementsIncompatible:
		return appErrors.Clone(appErrors.ErrRequirementsIncompatible, engErr.Detail)
	case engine.KindMisalignedTime, engine.KindInvalidCourse:
		return appErrors.Clone(appErrors.ErrMisalignedTime, engErr.Detail)
	default:
		return appErrors.Wrap(engErr, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, engErr.Error())
	}
}

func (s *ScheduleGeneratorService) resolveCatalog(ctx context.Context, req dto.GenerateScheduleRequest) ([]engine.Course, string, error) {
	if len(req.Catalog) > 0 {
		courses := toCourses(req.Catalog)
		return courses, catalogstore.ContentVersion(courses), nil
	}
	if s.catalogs == nil {
		return nil, "", appErrors.Clone(appErrors.ErrPreconditionFailed, "catalogRef given but no catalog source is configured")
	}
	catalog, version, err := s.catalogs.CatalogByRef(ctx, req.CatalogRef)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "catalog reference not found")
	}
	return catalog, version, nil
}

// --- DTO <-> engine conversions ---

func toCourses(items []dto.CourseInput) []engine.Course {
	out := make([]engine.Course, len(items))
	for i, c := range items {
		slots := make([]engine.TimeSlot, len(c.TimeSlots))
		for j, t := range c.TimeSlots {
			slots[j] = engine.TimeSlot{
				Day:   engine.Day(t.Day),
				Start: parseClockMinutes(t.Start),
				End:   parseClockMinutes(t.End),
				Room:  t.Room,
			}
		}
		out[i] = engine.NewCourse(c.ID, c.Name, c.Credits, c.Professor, slots, c.Category, c.TargetGrade)
	}
	return out
}

func parseClockMinutes(hhmm string) int {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0
	}
	return h*60 + m
}

func toFilters(items []dto.FilterInput) []engine.Filter {
	out := make([]engine.Filter, len(items))
	for i, f := range items {
		out[i] = engine.Filter{ID: f.ID, Name: f.Name, Professor: f.Professor}
	}
	return out
}

func toConfiguration(req dto.GenerateScheduleRequest) engine.Configuration {
	days := make([]engine.Day, len(req.ExcludedDays))
	for i, d := range req.ExcludedDays {
		days[i] = engine.Day(d)
	}
	intervals := make([]engine.ExcludedInterval, len(req.ExcludedIntervals))
	for i, iv := range req.ExcludedIntervals {
		intervals[i] = engine.ExcludedInterval{
			Day:   engine.Day(iv.Day),
			Start: parseClockMinutes(iv.Start),
			End:   parseClockMinutes(iv.End),
		}
	}
	return engine.Configuration{
		MinCredits:        req.MinCredits,
		MaxCredits:        req.MaxCredits,
		Required:          toFilters(req.Required),
		Desired:           toFilters(req.Desired),
		ExcludedDays:      days,
		ExcludedIntervals: intervals,
	}
}

// toOptions converts the wire request to engine.Options, falling back to
// this deployment's configured defaults (pkg/config GeneratorConfig) for
// any field the caller left at zero; engine.resolveOptions applies its own
// documented defaults (§4.7) below that.
func (s *ScheduleGeneratorService) toOptions(req dto.GenerateScheduleRequest) engine.Options {
	target := req.Target
	if target == 0 {
		target = s.defaults.DefaultTarget
	}
	batchLimit := req.BatchLimit
	if batchLimit == 0 {
		batchLimit = s.defaults.DefaultBatchLimit
	}
	return engine.Options{
		Target:            target,
		BatchLimit:        batchLimit,
		HardCap:           s.defaults.DefaultHardCap,
		Seed:              req.Seed,
		AllGradesMarker:   s.defaults.AllGradesMarker,
		OpenPoolBlocklist: s.defaults.OpenPoolBlocklist,
	}
}

func toScheduleViews(schedules []engine.Schedule) []dto.ScheduleView {
	out := make([]dto.ScheduleView, len(schedules))
	for i, s := range schedules {
		courses := make([]dto.CourseInput, len(s.Courses))
		for j, c := range s.Courses {
			slots := make([]dto.TimeSlotInput, len(c.TimeSlots))
			for k, t := range c.TimeSlots {
				slots[k] = dto.TimeSlotInput{
					Day:   int(t.Day),
					Start: formatClockMinutes(t.Start),
					End:   formatClockMinutes(t.End),
					Room:  t.Room,
				}
			}
			courses[j] = dto.CourseInput{
				ID:          c.ID,
				Name:        c.Name,
				Credits:     c.Credits,
				Professor:   c.Professor,
				TimeSlots:   slots,
				Category:    c.Category,
				TargetGrade: c.TargetGrade,
			}
		}
		out[i] = dto.ScheduleView{Courses: courses, TotalCredits: s.TotalCredits, RandomFilled: s.RandomFilled}
	}
	return out
}

func formatClockMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
