package validator

import (
	"errors"
	"reflect"
	"testing"
)

type sample struct {
	TaskID   string `json:"taskId" validate:"required"`
	Company  string `json:"companyName" validate:"required"`
	Location string `json:"location" validate:"required"`
	Note     string `json:"note,omitempty"`
}

func TestFields_UsesJSONNames(t *testing.T) {
	err := New().Validate(&sample{Company: "Acme"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := Fields(err); !reflect.DeepEqual(got, []string{"taskId", "location"}) {
		t.Fatalf("unexpected fields %v", got)
	}
}

func TestFields_NonValidationError(t *testing.T) {
	if Fields(errors.New("boom")) != nil {
		t.Fatal("expected nil for unrelated errors")
	}
	if err := New().Validate(&sample{TaskID: "t", Company: "c", Location: "l"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
