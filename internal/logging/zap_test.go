package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewZapLogger(zap.New(core))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	if got := logs.Len(); got != 4 {
		t.Fatalf("expected 4 log lines, got %d", got)
	}

	entries := logs.All()
	wantMsgs := []string{"dbg", "inf", "wrn", "err"}
	for i, want := range wantMsgs {
		if entries[i].Message != want {
			t.Fatalf("line %d: expected msg %q, got %q", i, want, entries[i].Message)
		}
	}
	if v, ok := entries[1].ContextMap()["b"]; !ok || v != int64(2) {
		t.Fatalf("expected field b=2, got %v", entries[1].ContextMap())
	}
}

func TestZapLogger_With(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewZapLogger(zap.New(core)).With("req_id", "123")

	log.Info(context.Background(), "hello")

	entry := logs.All()[0]
	if v := entry.ContextMap()["req_id"]; v != "123" {
		t.Fatalf("expected req_id=123, got %v", v)
	}
}
