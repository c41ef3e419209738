package dto

import (
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{}
		wantMsg string
	}{
		{"valid register", &RegisterRequest{Email: "a@example.com", Password: "password1"}, ""},
		{"bad email", &RegisterRequest{Email: "nope", Password: "password1"}, "email must be a valid email address"},
		{"short password", &RegisterRequest{Email: "a@example.com", Password: "short"}, "password must be at least 8 characters"},
		{"missing content", &CreatePostRequest{Channel: uuid.New()}, "content is required"},
		{"missing channel", &CreatePostRequest{Content: "hi"}, "channel is required"},
		{"bad target type", &ReactionRequest{TargetType: "event", TargetID: uuid.New(), Type: "like"}, "target_type must be one of: post comment"},
		{"valid reaction", &ReactionRequest{TargetType: models.TargetComment, TargetID: uuid.New(), Type: "like"}, ""},
		{"bad report status", &HandleReportRequest{Status: "done"}, "status must be one of: resolved rejected"},
		{"empty action allowed", &HandleReportRequest{Status: "resolved"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Fatalf("error = %v, want InvalidInput", err)
			}
			if err.Error() != tt.wantMsg {
				t.Fatalf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}
