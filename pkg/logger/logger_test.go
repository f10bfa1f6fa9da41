package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "lookup", Output: &buf})

	logg.Info(context.Background(), "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["service"] != "lookup" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["message"] != "hello" {
		t.Fatalf("expected message, got %v", entry["message"])
	}
}

func TestContextFieldsFlowThrough(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "lookup", Output: &buf})

	ctx := logg.WithUserID(context.Background(), "42")
	ctx = logg.WithProjectID(ctx, "7")
	logg.Info(ctx, "search")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["user_id"] != "42" {
		t.Fatalf("expected user_id 42, got %v", entry["user_id"])
	}
	if entry["project_id"] != "7" {
		t.Fatalf("expected project_id 7, got %v", entry["project_id"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "lookup", Level: zerolog.WarnLevel, Output: &buf})

	logg.Info(context.Background(), "suppressed")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}

	logg.Warn(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Fatal("expected warn to be written")
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("expected info for empty value")
	}
	if ParseLevel("garbage") != zerolog.InfoLevel {
		t.Fatal("expected info for unknown value")
	}
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("expected debug")
	}
}
