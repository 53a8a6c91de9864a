package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnauthorized, "UNAUTHORIZED"},
		{KindNotFound, "NOT_FOUND"},
		{KindInvalidState, "INVALID_STATE"},
		{KindValidation, "VALIDATION_ERROR"},
		{KindStorage, "STORAGE_ERROR"},
		{KindUnknown, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestErrorMessageShapes(t *testing.T) {
	withField := Validation("violation", "penalty_amount", "must not be negative")
	if got := withField.Error(); got != "VALIDATION_ERROR: violation.penalty_amount: must not be negative" {
		t.Errorf("unexpected message %q", got)
	}

	withoutField := NotFound("order", "unknown order id")
	if got := withoutField.Error(); got != "NOT_FOUND: order: unknown order id" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestIsKindUnwraps(t *testing.T) {
	base := InvalidState("violation", "already responded")
	wrapped := fmt.Errorf("handling request: %w", base)

	if !IsKind(wrapped, KindInvalidState) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(wrapped, KindNotFound) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), KindInvalidState) {
		t.Error("IsKind matched a foreign error")
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(Storage("deposit_refund", "update failed", errors.New("conn reset"))) != KindStorage {
		t.Error("KindOf lost the storage kind")
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("foreign errors must map to KindUnknown")
	}
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("conn reset")
	err := Storage("deposit_refund", "update failed", cause)
	if !errors.Is(err, cause) {
		t.Error("Storage must preserve the wrapped cause")
	}
}
