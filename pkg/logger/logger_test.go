package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithLevel("loud")); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestLoggerText(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Info(context.Background(), "chart saved", String("path", "radar_chart.png"))

	out := buf.String()
	if !strings.Contains(out, "chart saved") || !strings.Contains(out, "path=radar_chart.png") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "source=pkg/logger/logger_test.go:") && !strings.Contains(out, "logger_test.go:") {
		t.Fatalf("caller not reported: %q", out)
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf), WithFormat("JSON")); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("render").Warn(context.Background(), "slow", Int("entities", 4))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "slow" || entry["level"] != "WARN" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	group, ok := entry["render"].(map[string]interface{})
	if !ok || group["entities"] != float64(4) {
		t.Fatalf("named group missing: %v", entry)
	}
}

func TestLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf), WithFormat(FormatConsole)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Debug(ctx, "hidden")
	Get().Info(ctx, "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry leaked at info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("info entry missing: %q", out)
	}

	buf.Reset()
	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("failed to set level: %v", err)
	}
	Get().Debug(ctx, "now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("debug entry missing after SetLevelString: %q", buf.String())
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf), WithLevel("warn")); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "quiet")
	Get().Error(ctx, "loud", Error(context.Canceled))

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info entry leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "context canceled") {
		t.Fatalf("error entry missing: %q", out)
	}

	for _, level := range []string{"debug", "INFO", "warning", "error", ""} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("SetLevelString(%q) failed: %v", level, err)
		}
	}
}

func TestLoggerNop(t *testing.T) {
	l := Nop()
	l.Info(context.Background(), "discarded", Float64("mean", 1.5))
	l.Named("x").Error(context.Background(), "discarded", Any("k", []int{1}))
}
