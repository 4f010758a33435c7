package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code      Code
		status    int
		retryable bool
	}{
		{CodeValidation, http.StatusBadRequest, false},
		{CodeNotFound, http.StatusNotFound, false},
		{CodeInsufficientInventory, http.StatusConflict, false},
		{CodeInventoryConflict, http.StatusConflict, true},
		{CodeEmptyBasket, http.StatusUnprocessableEntity, false},
		{CodeInvalidAddress, http.StatusUnprocessableEntity, false},
		{CodeInvalidPaymentMethod, http.StatusUnprocessableEntity, false},
		{CodeDependency, http.StatusServiceUnavailable, true},
	}

	for _, tc := range cases {
		meta := MetadataFor(tc.code)
		if meta.HTTPStatus != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.code, tc.status, meta.HTTPStatus)
		}
		if meta.Retryable != tc.retryable {
			t.Errorf("%s: expected retryable=%v", tc.code, tc.retryable)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("driver broke")
	err := Wrap(CodeDependency, cause, "persist basket")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if typed := As(err); typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("unexpected typed error: %v", typed)
	}
}

func TestAsOnPlainError(t *testing.T) {
	t.Parallel()

	if typed := As(errors.New("plain")); typed != nil {
		t.Fatalf("expected nil for plain error, got %v", typed)
	}
}

func TestWithDetails(t *testing.T) {
	t.Parallel()

	err := New(CodeInsufficientInventory, "only 2 left").WithDetails(map[string]int{"available": 2})
	details, ok := err.Details().(map[string]int)
	if !ok || details["available"] != 2 {
		t.Fatalf("unexpected details: %v", err.Details())
	}
}
