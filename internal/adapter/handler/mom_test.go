package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/mom-service/errors"
	"github.com/johnquangdev/mom-service/internal/domain/entities"
	httpmw "github.com/johnquangdev/mom-service/internal/infrastructure/http/middleware"
	momUsecase "github.com/johnquangdev/mom-service/internal/usecase/mom"
	"github.com/johnquangdev/mom-service/pkg/config"
	pkgvalidator "github.com/johnquangdev/mom-service/pkg/validator"
)

type fakeMOMService struct {
	saved       momUsecase.SaveInput
	record      *entities.MeetingRecord
	generated   *momUsecase.GeneratedDocument
	err         error
	cleaned     []string
	regenerated uuid.UUID
	useAI       []bool
}

func (f *fakeMOMService) ProcessText(_ context.Context, text string, useAI bool) (entities.ProcessingResult, error) {
	f.useAI = append(f.useAI, useAI)
	return entities.ProcessingResult{ProcessedText: strings.ToUpper(text)}, f.err
}

func (f *fakeMOMService) Preview(_ context.Context, text string) ([]string, error) {
	return []string{text}, f.err
}

func (f *fakeMOMService) Save(_ context.Context, in momUsecase.SaveInput) (*entities.MeetingRecord, error) {
	f.saved = in
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeMOMService) Get(_ context.Context, id uuid.UUID) (*entities.MeetingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeMOMService) History(context.Context, uuid.UUID) ([]*entities.MeetingRecord, error) {
	return []*entities.MeetingRecord{f.record}, f.err
}

func (f *fakeMOMService) TasksWithMOMs(context.Context) ([]*entities.TaskRecordCount, error) {
	return nil, f.err
}

func (f *fakeMOMService) Generate(_ context.Context, id uuid.UUID) (*momUsecase.GeneratedDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.generated, nil
}

func (f *fakeMOMService) Regenerate(_ context.Context, id uuid.UUID) (*momUsecase.GeneratedDocument, error) {
	f.regenerated = id
	if f.err != nil {
		return nil, f.err
	}
	return f.generated, nil
}

func (f *fakeMOMService) Delete(context.Context, uuid.UUID) error { return f.err }

func (f *fakeMOMService) Cleanup(paths ...string) {
	f.cleaned = append(f.cleaned, paths...)
	for _, p := range paths {
		if p != "" {
			os.Remove(p)
		}
	}
}

func (f *fakeMOMService) Status() momUsecase.Status {
	return momUsecase.Status{TemplateExists: true, TemplatePath: "templates/mom-template.docx"}
}

func newTestServer(svc momUsecase.Service, authMW echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = ErrorHandler(nil)
	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(cfg, NewMOMHandler(svc, nil), authMW, nil).Setup(e)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

func sampleRecord() *entities.MeetingRecord {
	r := entities.NewMeetingRecord(uuid.New(), uuid.New(), "Acme", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "Pune")
	r.RawContent = "1. a"
	r.ProcessedContent = "1. A"
	r.DiscussionPoints = []string{"A"}
	return r
}

func TestProcessText(t *testing.T) {
	e := newTestServer(&fakeMOMService{}, nil)

	rec := do(e, http.MethodPost, "/v1/mom/process-text", `{"text":"hello","useAI":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var body struct {
		Data entities.ProcessingResult `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Data.ProcessedText != "HELLO" {
		t.Fatalf("body = %s", rec.Body)
	}

	rec = do(e, http.MethodPost, "/v1/mom/process-text", `{"useAI":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing text status = %d", rec.Code)
	}
	if b := decodeError(t, rec); b.Code != "VALIDATION_FAILED" || b.Details["fields"] != "text" {
		t.Fatalf("error body = %+v", b)
	}

	rec = do(e, http.MethodPost, "/v1/mom/process-text", `{not json`)
	if b := decodeError(t, rec); rec.Code != http.StatusBadRequest || b.Code != "INVALID_PAYLOAD" {
		t.Fatalf("bad json: %d %+v", rec.Code, b)
	}
}

func TestProcessText_UseAIDefaultsToTrue(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"text":"hello world"}`, true},
		{`{"text":"hello world","useAI":null}`, true},
		{`{"text":"hello world","useAI":true}`, true},
		{`{"text":"hello world","useAI":false}`, false},
	}
	for _, tt := range tests {
		svc := &fakeMOMService{}
		e := newTestServer(svc, nil)

		rec := do(e, http.MethodPost, "/v1/mom/process-text", tt.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tt.body, rec.Code)
		}
		if len(svc.useAI) != 1 || svc.useAI[0] != tt.want {
			t.Errorf("%s: useAI = %v, want %v", tt.body, svc.useAI, tt.want)
		}
	}
}

func TestSave_DefaultsCreatedByToCaller(t *testing.T) {
	svc := &fakeMOMService{record: sampleRecord()}
	userID := uuid.New()
	setUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(httpmw.UserIDKey, userID)
			return next(c)
		}
	}
	e := newTestServer(svc, setUser)

	rec := do(e, http.MethodPost, "/v1/mom/save", `{"taskId":"t","companyName":"Acme","attendees":["Alice",{"name":"Bob"}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if svc.saved.CreatedBy != userID.String() {
		t.Fatalf("createdBy = %q", svc.saved.CreatedBy)
	}
	if len(svc.saved.Attendees) != 2 || string(svc.saved.Attendees[0]) != `"Alice"` {
		t.Fatalf("attendees = %s", svc.saved.Attendees)
	}
}

func TestSave_ValidationErrorIsReported(t *testing.T) {
	svc := &fakeMOMService{err: errors.ErrValidation("missing required fields: location", "location")}
	e := newTestServer(svc, nil)

	rec := do(e, http.MethodPost, "/v1/mom/save", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if b := decodeError(t, rec); b.Details["fields"] != "location" {
		t.Fatalf("body = %+v", b)
	}
}

func TestGenerate_StreamsAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "MOM_Acme_1.docx")
	if err := os.WriteFile(docPath, []byte("PK-docx-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	svc := &fakeMOMService{generated: &momUsecase.GeneratedDocument{
		Record:       sampleRecord(),
		DocPath:      docPath,
		DownloadName: "MOM_Acme_1700000000000.docx",
	}}
	e := newTestServer(svc, nil)

	rec := do(e, http.MethodPost, "/v1/mom/generate-docx-from-template", `{"momId":"`+uuid.NewString()+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if rec.Body.String() != "PK-docx-bytes" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "MOM_Acme_1700000000000.docx") {
		t.Fatalf("content-disposition = %q", cd)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != docxContentType {
		t.Fatalf("content-type = %q", ct)
	}
	if _, err := os.Stat(docPath); !os.IsNotExist(err) {
		t.Fatal("document not cleaned up after streaming")
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{"missing id", `{}`, nil, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"bad id", `{"momId":"42"}`, nil, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"template missing", `{"momId":"` + uuid.NewString() + `"}`, errors.ErrTemplateMissing("templates/mom-template.docx"), http.StatusBadRequest, "TEMPLATE_MISSING"},
		{"not found", `{"momId":"` + uuid.NewString() + `"}`, errors.ErrMOMNotFound("x"), http.StatusNotFound, "MOM_NOT_FOUND"},
		{"in progress", `{"momId":"` + uuid.NewString() + `"}`, errors.ErrGenerationInProgress("x"), http.StatusConflict, "GENERATION_IN_PROGRESS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(&fakeMOMService{err: tt.err}, nil)
			rec := do(e, http.MethodPost, "/v1/mom/generate-docx-from-template", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
			}
			if b := decodeError(t, rec); b.Code != tt.code {
				t.Fatalf("code = %s", b.Code)
			}
		})
	}
}

func TestRegenerate(t *testing.T) {
	record := sampleRecord()
	svc := &fakeMOMService{generated: &momUsecase.GeneratedDocument{Record: record, DocPath: "/tmp/x.docx"}}
	e := newTestServer(svc, nil)

	rec := do(e, http.MethodPost, "/v1/mom/regenerate-docx-from-template/"+record.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if svc.regenerated != record.ID {
		t.Fatal("wrong id passed to service")
	}
	if len(svc.cleaned) != 0 {
		t.Fatal("regenerated artifacts must stay on disk")
	}

	rec = do(e, http.MethodPost, "/v1/mom/regenerate-docx-from-template/nope", "")
	if b := decodeError(t, rec); rec.Code != http.StatusBadRequest || b.Code != "INVALID_ARGUMENT" {
		t.Fatalf("bad id: %d %+v", rec.Code, b)
	}
}

func TestViewAndDelete(t *testing.T) {
	record := sampleRecord()
	e := newTestServer(&fakeMOMService{record: record}, nil)

	rec := do(e, http.MethodGet, "/v1/mom/view/"+record.ID.String(), "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"companyName":"Acme"`) {
		t.Fatalf("view: %d %s", rec.Code, rec.Body)
	}

	rec = do(e, http.MethodDelete, "/v1/mom/"+record.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body)
	}

	e = newTestServer(&fakeMOMService{err: errors.ErrMOMNotFound(record.ID.String())}, nil)
	rec = do(e, http.MethodDelete, "/v1/mom/"+record.ID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing: %d", rec.Code)
	}
}

func TestDiagnosticsAndHealth(t *testing.T) {
	e := newTestServer(&fakeMOMService{}, nil)

	rec := do(e, http.MethodGet, "/v1/mom/test", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"templateExists":true`) {
		t.Fatalf("test route: %d %s", rec.Code, rec.Body)
	}

	rec = do(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/v1/unknown", "")
	if b := decodeError(t, rec); rec.Code != http.StatusNotFound || b.Code != "NOT_FOUND" {
		t.Fatalf("unknown route: %d %+v", rec.Code, b)
	}
}
