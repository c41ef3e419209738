package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/testutil"
)

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)).With("request_id", "r-1")

	logger.Info("post submitted")
	logger.Error("flush failed")

	if n := bytes.Count(info.Bytes(), []byte("\n")); n != 2 {
		t.Fatalf("info handler got %d lines, want 2", n)
	}
	if n := bytes.Count(errs.Bytes(), []byte("\n")); n != 1 {
		t.Fatalf("error handler got %d lines, want 1", n)
	}

	var line map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(errs.Bytes()), &line); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if line["request_id"] != "r-1" || line["msg"] != "flush failed" {
		t.Fatalf("line = %v", line)
	}
}

func TestPGHandlerPersistsErrors(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewPGHandler(db)
	logger := slog.New(h).With("request_id", "req-42")

	logger.Info("ignored")
	logger.Error("report handling failed",
		"user_id", "u-1",
		"event_id", "e-1",
		"action", "handle_report",
		"error", "boom",
		"latency_ms", 12.6,
		"report_id", "rep-1",
	)
	h.Stop()

	var logs []models.SystemLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("stored %d logs, want 1", len(logs))
	}
	got := logs[0]
	if got.RequestID != "req-42" || got.Action != "handle_report" || got.Error != "boom" || got.LatencyMs != 13 {
		t.Fatalf("log = %+v", got)
	}
	if got.UserID == nil || *got.UserID != "u-1" || got.EventID == nil || *got.EventID != "e-1" {
		t.Fatalf("ids = %v %v", got.UserID, got.EventID)
	}

	var extra map[string]interface{}
	if err := json.Unmarshal(got.Extra, &extra); err != nil {
		t.Fatalf("extra: %v", err)
	}
	if extra["report_id"] != "rep-1" {
		t.Fatalf("extra = %v", extra)
	}
}

func TestPGHandlerEnabled(t *testing.T) {
	h := &PGHandler{}
	if h.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("warn should not be persisted")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error should be persisted")
	}
}

func TestPurgeBefore(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now()
	rows := []models.SystemLog{
		{Timestamp: now.Add(-40 * 24 * time.Hour), Level: "ERROR", Message: "old"},
		{Timestamp: now.Add(-time.Hour), Level: "ERROR", Message: "recent"},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	deleted, err := PurgeBefore(db, now.Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}

	var left []models.SystemLog
	db.Find(&left)
	if len(left) != 1 || left[0].Message != "recent" {
		t.Fatalf("left = %+v", left)
	}
}
