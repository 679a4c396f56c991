package mom

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/mom-service/errors"
	"github.com/johnquangdev/mom-service/internal/domain/entities"
	"github.com/johnquangdev/mom-service/internal/domain/repositories"
	"github.com/johnquangdev/mom-service/internal/infrastructure/lock"
	"github.com/johnquangdev/mom-service/internal/usecase/document"
	"github.com/johnquangdev/mom-service/internal/usecase/textproc"
)

// Service is the meeting-minutes use case
type Service interface {
	ProcessText(ctx context.Context, text string, useAI bool) (entities.ProcessingResult, error)
	Preview(ctx context.Context, text string) ([]string, error)
	Save(ctx context.Context, input SaveInput) (*entities.MeetingRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error)
	History(ctx context.Context, taskID uuid.UUID) ([]*entities.MeetingRecord, error)
	TasksWithMOMs(ctx context.Context) ([]*entities.TaskRecordCount, error)
	Generate(ctx context.Context, id uuid.UUID) (*GeneratedDocument, error)
	Regenerate(ctx context.Context, id uuid.UUID) (*GeneratedDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Cleanup(paths ...string)
	Status() Status
}

// TextProcessor is satisfied by *textproc.Pipeline
type TextProcessor interface {
	Process(ctx context.Context, text string, useAI bool) entities.ProcessingResult
	AIAvailable() bool
}

// DocumentGenerator is satisfied by *document.Generator
type DocumentGenerator interface {
	TemplateExists() bool
	TemplatePath() string
	Generate(ctx context.Context, tc document.TemplateContext, baseFileName string) (*document.Artifacts, error)
}

// Archiver copies generated artifacts to object storage
type Archiver interface {
	Archive(ctx context.Context, recordID string, paths ...string) (string, error)
	Remove(ctx context.Context, recordID string) error
}

// SaveInput is the raw save payload. Attendees and images are kept raw
// because clients send several shapes for them.
type SaveInput struct {
	TaskID           string
	CompanyName      string
	VisitDate        string
	Location         string
	Attendees        []json.RawMessage
	RawContent       string
	ProcessedContent string
	Images           []json.RawMessage
	CreatedBy        string
}

// GeneratedDocument is the outcome of a generation
type GeneratedDocument struct {
	Record       *entities.MeetingRecord
	DocPath      string
	PdfPath      string
	DownloadName string
	// ArchiveURL is a presigned link when archiving is enabled
	ArchiveURL string
}

// Status describes whether generation and model correction can run
type Status struct {
	TemplateExists bool   `json:"templateExists"`
	TemplatePath   string `json:"templatePath"`
	AIAvailable    bool   `json:"aiAvailable"`
}

type momService struct {
	records   repositories.MeetingRecordRepository
	tasks     repositories.TaskRepository
	processor TextProcessor
	generator DocumentGenerator
	locker    lock.Locker
	archiver  Archiver
	lockTTL   time.Duration
	persist   *textproc.Extractor
	preview   *textproc.Extractor
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the MOM use case. archiver may be nil.
func NewService(
	records repositories.MeetingRecordRepository,
	tasks repositories.TaskRepository,
	processor TextProcessor,
	generator DocumentGenerator,
	locker lock.Locker,
	archiver Archiver,
	lockTTL time.Duration,
	logger *zap.Logger,
) Service {
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}
	return &momService{
		records:   records,
		tasks:     tasks,
		processor: processor,
		generator: generator,
		locker:    locker,
		archiver:  archiver,
		lockTTL:   lockTTL,
		persist:   textproc.NewExtractor(textproc.LinePerPoint),
		preview:   textproc.NewExtractor(textproc.SpanUntilNextMarker),
		logger:    logger,
		now:       time.Now,
	}
}

// ProcessText runs the text pipeline. Only empty input is an error.
func (s *momService) ProcessText(ctx context.Context, text string, useAI bool) (entities.ProcessingResult, error) {
	if strings.TrimSpace(text) == "" {
		return entities.ProcessingResult{}, errors.ErrValidation("text is required", "text")
	}

	result := s.processor.Process(ctx, text, useAI)
	if s.logger != nil {
		fields := []zap.Field{
			zap.Bool("use_ai", useAI),
			zap.Bool("translated", result.WasTranslated),
			zap.Bool("ai_corrected", result.WasAICorrected),
			zap.Int("changes", result.Changes),
		}
		if result.Error != "" {
			s.logger.Warn("⚠️ Text processed with fallback", append(fields, zap.String("cause", result.Error))...)
		} else {
			s.logger.Info("📝 Text processed", fields...)
		}
	}
	return result, nil
}

// Preview splits text into discussion points, spanning continuation lines
func (s *momService) Preview(_ context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.ErrValidation("text is required", "text")
	}
	return s.preview.Extract(text), nil
}

// Save validates the payload, checks the task and persists a new record
func (s *momService) Save(ctx context.Context, input SaveInput) (*entities.MeetingRecord, error) {
	record, err := s.buildRecord(input)
	if err != nil {
		return nil, toAppError(err)
	}

	task, err := s.tasks.FindByID(ctx, record.TaskID)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("find task", err)
	}
	if task == nil {
		return nil, errors.ErrTaskNotFound(record.TaskID.String())
	}

	if err := s.records.Create(ctx, record); err != nil {
		if stdErrors.Is(err, entities.ErrIncompleteRecord) {
			return nil, toAppError(missingFields(record.MissingFields()...))
		}
		return nil, errors.ErrDBQueryFailed("create meeting record", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ MOM saved",
			zap.String("record_id", record.ID.String()),
			zap.String("task_id", record.TaskID.String()),
			zap.Int("discussion_points", len(record.DiscussionPoints)),
			zap.Int("attendees", len(record.Attendees)),
			zap.Int("images", len(record.Images)),
		)
	}
	return record, nil
}

func (s *momService) buildRecord(input SaveInput) (*entities.MeetingRecord, error) {
	required := []struct {
		name  string
		value string
	}{
		{"taskId", input.TaskID},
		{"companyName", input.CompanyName},
		{"visitDate", input.VisitDate},
		{"location", input.Location},
		{"rawContent", input.RawContent},
		{"processedContent", input.ProcessedContent},
		{"createdBy", input.CreatedBy},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	taskID, err := uuid.Parse(strings.TrimSpace(input.TaskID))
	if err != nil {
		return nil, invalidField("taskId", input.TaskID, "not a valid id")
	}
	createdBy, err := uuid.Parse(strings.TrimSpace(input.CreatedBy))
	if err != nil {
		return nil, invalidField("createdBy", input.CreatedBy, "not a valid id")
	}
	visitDate, err := ParseVisitDate(input.VisitDate)
	if err != nil {
		return nil, err
	}

	record := entities.NewMeetingRecord(
		taskID,
		createdBy,
		strings.TrimSpace(input.CompanyName),
		visitDate,
		strings.TrimSpace(input.Location),
	)
	record.RawContent = input.RawContent
	record.ProcessedContent = input.ProcessedContent
	record.DiscussionPoints = s.persist.Extract(input.ProcessedContent)

	attendees, droppedAttendees := NormalizeAttendees(input.Attendees)
	images, droppedImages := NormalizeImages(input.Images)
	record.Attendees = attendees
	record.Images = images
	if s.logger != nil && droppedAttendees+droppedImages > 0 {
		s.logger.Warn("⚠️ Dropped malformed entries",
			zap.String("record_id", record.ID.String()),
			zap.Int("attendees", droppedAttendees),
			zap.Int("images", droppedImages),
		)
	}
	return record, nil
}

// Get returns one record
func (s *momService) Get(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error) {
	return s.findRecord(ctx, id)
}

// History lists a task's records, newest first
func (s *momService) History(ctx context.Context, taskID uuid.UUID) ([]*entities.MeetingRecord, error) {
	records, err := s.records.ListByTask(ctx, taskID)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list meeting records", err)
	}
	return records, nil
}

// TasksWithMOMs lists tasks that have records, with their titles filled in
func (s *momService) TasksWithMOMs(ctx context.Context) ([]*entities.TaskRecordCount, error) {
	counts, err := s.records.ListTaskCounts(ctx)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("count meeting records", err)
	}
	if len(counts) == 0 {
		return counts, nil
	}

	ids := make([]uuid.UUID, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.TaskID)
	}
	tasks, err := s.tasks.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("find tasks", err)
	}
	for _, c := range counts {
		if task, ok := tasks[c.TaskID]; ok {
			c.Title = task.Title
		}
	}
	return counts, nil
}

// Generate builds the document for a record
func (s *momService) Generate(ctx context.Context, id uuid.UUID) (*GeneratedDocument, error) {
	return s.generate(ctx, id, "generate")
}

// Regenerate rebuilds the document for a record, replacing prior artifacts
func (s *momService) Regenerate(ctx context.Context, id uuid.UUID) (*GeneratedDocument, error) {
	return s.generate(ctx, id, "regenerate")
}

func (s *momService) generate(ctx context.Context, id uuid.UUID, op string) (*GeneratedDocument, error) {
	if !s.generator.TemplateExists() {
		return nil, errors.ErrTemplateMissing(s.generator.TemplatePath())
	}

	release, err := s.locker.Acquire(ctx, "mom:generate:"+id.String(), s.lockTTL)
	if err != nil {
		if stdErrors.Is(err, lock.ErrNotAcquired) {
			return nil, errors.ErrGenerationInProgress(id.String())
		}
		return nil, errors.ErrCacheFailed("acquire generation lock", err)
	}
	defer release()

	// Read under the lock so the artifact paths belong to the last finished run
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	// Stale artifacts from an earlier run
	if record.HasArtifacts() {
		s.cleanup(record.ID, record.ArtifactPaths()...)
	}

	tc := document.NewTemplateContext(record, s.taskTitle(ctx, record.TaskID))
	artifacts, err := s.generator.Generate(ctx, tc, BaseFileName(record.CompanyName))
	if err != nil {
		if stdErrors.Is(err, document.ErrTemplateMissing) {
			return nil, errors.ErrTemplateMissing(s.generator.TemplatePath())
		}
		return nil, errors.ErrDocumentRenderFailed(err)
	}

	record.SetArtifacts(artifacts.DocPath, artifacts.PdfPath)
	if err := s.records.UpdateArtifacts(ctx, record.ID, record.GeneratedDocPath, record.GeneratedPdfPath); err != nil {
		s.cleanup(record.ID, artifacts.Paths()...)
		if stdErrors.Is(err, entities.ErrMeetingRecordNotFound) {
			return nil, errors.ErrMOMNotFound(id.String())
		}
		return nil, errors.ErrDBQueryFailed("update artifacts", err)
	}

	out := &GeneratedDocument{
		Record:       record,
		DocPath:      artifacts.DocPath,
		PdfPath:      artifacts.PdfPath,
		DownloadName: DownloadFileName(record.CompanyName, s.now()),
	}

	if s.archiver != nil {
		url, err := s.archiver.Archive(ctx, record.ID.String(), artifacts.Paths()...)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Archiving generated document failed",
					zap.String("record_id", record.ID.String()),
					zap.Error(err),
				)
			}
		} else {
			out.ArchiveURL = url
		}
	}

	if s.logger != nil {
		s.logger.Info("📄 MOM document ready",
			zap.String("op", op),
			zap.String("record_id", record.ID.String()),
			zap.String("doc_path", out.DocPath),
			zap.Bool("pdf", out.PdfPath != ""),
		)
	}
	return out, nil
}

// Delete removes a record along with its artifacts
func (s *momService) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return err
	}

	s.cleanup(record.ID, record.ArtifactPaths()...)
	if s.archiver != nil {
		if err := s.archiver.Remove(ctx, record.ID.String()); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Removing archived artifacts failed",
				zap.String("record_id", record.ID.String()),
				zap.Error(err),
			)
		}
	}

	if err := s.records.Delete(ctx, id); err != nil {
		if stdErrors.Is(err, entities.ErrMeetingRecordNotFound) {
			return errors.ErrMOMNotFound(id.String())
		}
		return errors.ErrDBQueryFailed("delete meeting record", err)
	}

	if s.logger != nil {
		s.logger.Info("🗑️ MOM deleted", zap.String("record_id", id.String()))
	}
	return nil
}

// Cleanup removes temporary files after they were streamed
func (s *momService) Cleanup(paths ...string) {
	s.cleanup(uuid.Nil, paths...)
}

// Status reports template and model availability
func (s *momService) Status() Status {
	return Status{
		TemplateExists: s.generator.TemplateExists(),
		TemplatePath:   s.generator.TemplatePath(),
		AIAvailable:    s.processor.AIAvailable(),
	}
}

func (s *momService) cleanup(recordID uuid.UUID, paths ...string) {
	if err := document.CleanupIfExists(paths...); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Cleanup failed",
			zap.String("record_id", recordID.String()),
			zap.Strings("paths", paths),
			zap.Error(err),
		)
	}
}

func (s *momService) findRecord(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("find meeting record", err)
	}
	if record == nil {
		return nil, errors.ErrMOMNotFound(id.String())
	}
	return record, nil
}

// taskTitle is a fallback document label; lookup failures are not fatal
func (s *momService) taskTitle(ctx context.Context, taskID uuid.UUID) string {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Task lookup failed", zap.String("task_id", taskID.String()), zap.Error(err))
		}
		return ""
	}
	if task == nil {
		return ""
	}
	return task.Title
}

// toAppError maps use-case errors onto API errors
func toAppError(err error) error {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		msg := ve.Error()
		appErr := errors.ErrValidation(msg, ve.Fields...)
		appErr.Raw = ve
		if ve.Value != "" {
			appErr = appErr.WithDetail("value", ve.Value)
		}
		return appErr
	}
	return errors.ErrInternal(fmt.Errorf("mom: %w", err))
}
