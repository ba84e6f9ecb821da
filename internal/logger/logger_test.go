package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker", "test"} {
		t.Run(env, func(t *testing.T) {
			l, err := NewLogger(env, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l == nil {
				t.Fatal("expected logger")
			}
		})
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging", Options{}); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", Options{Level: "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled")
	}

	if _, err := NewLogger("prod", Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewLogger_WritesDailyFile(t *testing.T) {
	dir := t.TempDir()

	l, err := NewLogger("dev", Options{Dir: dir, FileName: "RankService"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Named("rank").Info("query started", zap.String("trace_id", "abc123def456"))
	_ = l.Sync()

	path := filepath.Join(dir, "RankService_"+time.Now().Format("20060102")+".log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := string(data)
	for _, want := range []string{"INFO", "rank", "query started", "abc123def456"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestFromContextOr(t *testing.T) {
	fallbackCore, fallbackLogs := observer.New(zapcore.InfoLevel)
	fallback := zap.New(fallbackCore).Named("rank")

	FromContextOr(context.Background(), fallback).Info("no request")
	if fallbackLogs.Len() != 1 {
		t.Fatalf("expected fallback to receive entry, got %d", fallbackLogs.Len())
	}

	reqCore, reqLogs := observer.New(zapcore.InfoLevel)
	reqLogger := zap.New(reqCore).With(zap.String("request_id", "req-1"))
	ctx := ContextWithLogger(context.Background(), reqLogger)

	FromContextOr(ctx, fallback).Info("in request")
	if reqLogs.Len() != 1 {
		t.Fatalf("expected request logger to receive entry, got %d", reqLogs.Len())
	}
	if got := reqLogs.All()[0].ContextMap()["request_id"]; got != "req-1" {
		t.Errorf("request_id = %v, want req-1", got)
	}
	if name := reqLogs.All()[0].LoggerName; name != "rank" {
		t.Errorf("logger name = %q, want rank", name)
	}
}
