package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestErrValidation_ListsFields(t *testing.T) {
	err := ErrValidation("Missing required fields", "taskId", "location")

	if err.HTTPCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPCode)
	}
	if err.Details["fields"] != "taskId,location" {
		t.Errorf("unexpected fields detail %q", err.Details["fields"])
	}
}

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	base := ErrMOMNotFound("abc")
	derived := base.WithDetail("extra", "1")

	if _, ok := base.Details["extra"]; ok {
		t.Fatal("original error details were mutated")
	}
	if derived.Details["mom_id"] != "abc" || derived.Details["extra"] != "1" {
		t.Errorf("unexpected details %v", derived.Details)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stdErrors.New("boom")
	err := error(ErrDocumentRenderFailed(cause))

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected AppError to unwrap to its cause")
	}
	var appErr AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != ErrorCode_DOCUMENT_RENDER_FAILED {
		t.Fatalf("unexpected app error %v", err)
	}
}

func TestErrorCode_String(t *testing.T) {
	if ErrorCode_TEMPLATE_MISSING.String() != "TEMPLATE_MISSING" {
		t.Errorf("unexpected name %s", ErrorCode_TEMPLATE_MISSING.String())
	}
	if ErrorCode(42).String() != "UNKNOWN" {
		t.Errorf("expected UNKNOWN for unregistered code")
	}
}
