package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/config"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/testutil"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
	return NewAuthService(db, cfg)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, &dto.RegisterRequest{Email: "Sam@Example.com", Password: "password123"})
	mustNoErr(t, err)

	_, err = auth.Register(ctx, &dto.RegisterRequest{Email: "sam@example.com", Password: "password456"})
	expectErr(t, err, apperrors.ErrConflict)
}

func TestConcurrentRegistrationsHaveOneWinner(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	const n = 4
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = auth.Register(ctx, &dto.RegisterRequest{Email: "race@example.com", Password: "password123"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, apperrors.ErrConflict):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("successful registrations = %d, want 1", ok)
	}

	var count int64
	auth.db.Model(&models.User{}).Where("email = ?", "race@example.com").Count(&count)
	if count != 1 {
		t.Fatalf("users stored = %d, want 1", count)
	}
}
