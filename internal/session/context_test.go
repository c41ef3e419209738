package session

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestClaimsFromToken(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		claims   jwt.MapClaims
		wantRole string
		wantErr  bool
	}{
		{
			name:     "admin role",
			claims:   jwt.MapClaims{"sub": userID.String(), "email": "a@example.com", "role": "admin"},
			wantRole: models.RoleAdmin,
		},
		{
			name:     "missing role defaults to volunteer",
			claims:   jwt.MapClaims{"sub": userID.String()},
			wantRole: models.RoleVolunteer,
		},
		{
			name:     "unknown role downgraded",
			claims:   jwt.MapClaims{"sub": userID.String(), "role": "superuser"},
			wantRole: models.RoleVolunteer,
		},
		{
			name:    "missing sub",
			claims:  jwt.MapClaims{"role": "admin"},
			wantErr: true,
		},
		{
			name:    "malformed sub",
			claims:  jwt.MapClaims{"sub": "not-a-uuid"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClaimsFromToken(jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.UserID != userID {
				t.Fatalf("user id = %s, want %s", got.UserID, userID)
			}
			if got.Role != tt.wantRole {
				t.Fatalf("role = %q, want %q", got.Role, tt.wantRole)
			}
		})
	}
}

func TestClaimsFromNilToken(t *testing.T) {
	if _, err := ClaimsFromToken(nil); err == nil {
		t.Fatal("expected error for nil token")
	}
}
