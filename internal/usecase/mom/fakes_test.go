package mom

import (
	"context"
	stdErrors "errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/mom-service/errors"
	"github.com/johnquangdev/mom-service/internal/domain/entities"
	"github.com/johnquangdev/mom-service/internal/infrastructure/cache"
	"github.com/johnquangdev/mom-service/internal/infrastructure/lock"
	"github.com/johnquangdev/mom-service/internal/usecase/document"
)

type fakeRecordRepo struct {
	mu        sync.Mutex
	records   map[uuid.UUID]*entities.MeetingRecord
	updateErr error
	updates   int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[uuid.UUID]*entities.MeetingRecord{}}
}

func (r *fakeRecordRepo) Create(_ context.Context, record *entities.MeetingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(record.MissingFields()) > 0 {
		return entities.ErrIncompleteRecord
	}
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *fakeRecordRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.MeetingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) UpdateArtifacts(_ context.Context, id uuid.UUID, docPath, pdfPath *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.updateErr != nil {
		return r.updateErr
	}
	rec, ok := r.records[id]
	if !ok {
		return entities.ErrMeetingRecordNotFound
	}
	rec.GeneratedDocPath = docPath
	rec.GeneratedPdfPath = pdfPath
	return nil
}

func (r *fakeRecordRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return entities.ErrMeetingRecordNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeRecordRepo) ListByTask(_ context.Context, taskID uuid.UUID) ([]*entities.MeetingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.MeetingRecord
	for _, rec := range r.records {
		if rec.TaskID == taskID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRecordRepo) ListTaskCounts(_ context.Context) ([]*entities.TaskRecordCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byTask := map[uuid.UUID]*entities.TaskRecordCount{}
	for _, rec := range r.records {
		c, ok := byTask[rec.TaskID]
		if !ok {
			c = &entities.TaskRecordCount{TaskID: rec.TaskID}
			byTask[rec.TaskID] = c
		}
		c.RecordCount++
		if rec.CreatedAt.After(c.LastRecordAt) {
			c.LastRecordAt = rec.CreatedAt
		}
	}
	out := make([]*entities.TaskRecordCount, 0, len(byTask))
	for _, c := range byTask {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastRecordAt.After(out[j].LastRecordAt) })
	return out, nil
}

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*entities.Task
	err   error
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.tasks[id], nil
}

func (r *fakeTaskRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := map[uuid.UUID]*entities.Task{}
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

type fakeProcessor struct {
	result entities.ProcessingResult
	calls  int
}

func (p *fakeProcessor) Process(_ context.Context, text string, _ bool) entities.ProcessingResult {
	p.calls++
	r := p.result
	if r.ProcessedText == "" {
		r.ProcessedText = text
	}
	return r
}

func (p *fakeProcessor) AIAvailable() bool { return false }

// fakeGenerator writes small files into dir, like the real generator
type fakeGenerator struct {
	dir         string
	noTemplate  bool
	withPDF     bool
	err         error
	calls       int
	lastContext document.TemplateContext
}

func (g *fakeGenerator) TemplateExists() bool { return !g.noTemplate }

func (g *fakeGenerator) TemplatePath() string { return filepath.Join(g.dir, "template.docx") }

func (g *fakeGenerator) Generate(_ context.Context, tc document.TemplateContext, base string) (*document.Artifacts, error) {
	g.calls++
	g.lastContext = tc
	if g.err != nil {
		return nil, g.err
	}
	doc := filepath.Join(g.dir, base+"_"+uuid.NewString()+".docx")
	if err := os.WriteFile(doc, []byte("docx"), 0o644); err != nil {
		return nil, err
	}
	a := &document.Artifacts{DocPath: doc}
	if g.withPDF {
		a.PdfPath = doc[:len(doc)-len(".docx")] + ".pdf"
		if err := os.WriteFile(a.PdfPath, []byte("pdf"), 0o644); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// hookLocker runs before once, ahead of the first Acquire. before may call
// Acquire again.
type hookLocker struct {
	lock.Locker
	before func()
}

func (l *hookLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if before := l.before; before != nil {
		l.before = nil
		before()
	}
	return l.Locker.Acquire(ctx, key, ttl)
}

type fakeArchiver struct {
	archived []string
	removed  []string
	err      error
}

func (a *fakeArchiver) Archive(_ context.Context, recordID string, paths ...string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.archived = append(a.archived, paths...)
	return "https://files.example.com/mom/" + recordID, nil
}

func (a *fakeArchiver) Remove(_ context.Context, recordID string) error {
	a.removed = append(a.removed, recordID)
	return a.err
}

type fixture struct {
	svc       *momService
	records   *fakeRecordRepo
	tasks     *fakeTaskRepo
	generator *fakeGenerator
	archiver  *fakeArchiver
	locker    lock.Locker
	task      *entities.Task
	dir       string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	task := &entities.Task{ID: uuid.New(), Title: "Plant audit"}

	store := cache.NewMemoryStore()
	t.Cleanup(store.Close)

	f := &fixture{
		records:   newFakeRecordRepo(),
		tasks:     &fakeTaskRepo{tasks: map[uuid.UUID]*entities.Task{task.ID: task}},
		generator: &fakeGenerator{dir: dir},
		archiver:  &fakeArchiver{},
		locker:    lock.NewMemoryLocker(store),
		task:      task,
		dir:       dir,
	}
	f.svc = NewService(
		f.records,
		f.tasks,
		&fakeProcessor{},
		f.generator,
		f.locker,
		f.archiver,
		time.Minute,
		nil,
	).(*momService)
	return f
}

func (f *fixture) validInput() SaveInput {
	return SaveInput{
		TaskID:           f.task.ID.String(),
		CompanyName:      "Acme Corp",
		VisitDate:        "2024-03-15",
		Location:         "Ahmedabad",
		RawContent:       "1. check pumps\n2. order parts",
		ProcessedContent: "1. Check pumps.\n2. Order parts.",
		CreatedBy:        uuid.NewString(),
	}
}

func (f *fixture) saved(t *testing.T) *entities.MeetingRecord {
	t.Helper()
	rec, err := f.svc.Save(context.Background(), f.validInput())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	return rec
}

func appError(t *testing.T, err error) errors.AppError {
	t.Helper()
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
