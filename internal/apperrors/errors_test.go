package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindsMatchThroughWrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{name: "not found", err: NotFound("post"), kind: ErrNotFound, msg: "post not found"},
		{name: "forbidden", err: Forbidden("not a moderator"), kind: ErrForbidden, msg: "not a moderator"},
		{name: "invalid", err: InvalidInput("content is required"), kind: ErrInvalidInput, msg: "content is required"},
		{name: "conflict", err: Conflict("already handled"), kind: ErrConflict, msg: "already handled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("load: %w", tt.err)
			if !errors.Is(wrapped, tt.kind) {
				t.Fatalf("expected %v to match %v", wrapped, tt.kind)
			}
			if tt.err.Error() != tt.msg {
				t.Fatalf("expected message %q, got %q", tt.msg, tt.err.Error())
			}
		})
	}
}

func TestErrorFallsBackToKindMessage(t *testing.T) {
	err := &Error{Kind: ErrForbidden}
	if err.Error() != "not authorized" {
		t.Fatalf("expected kind message, got %q", err.Error())
	}
}
