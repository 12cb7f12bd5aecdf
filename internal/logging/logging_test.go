package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type recordingLogger struct {
	interfaces.Logger
	fields map[string]any
}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	return &recordingLogger{fields: fields}
}

type providerFunc func(name string) interfaces.Logger

func (f providerFunc) GetLogger(name string) interfaces.Logger { return f(name) }

func TestModuleLoggerNilProvider(t *testing.T) {
	logger := ModuleLogger(nil, "blog.content")
	if logger == nil {
		t.Fatalf("expected a usable logger for nil provider")
	}
	// No-op loggers must be safe to call.
	logger.Info("hello", "key", "value")
	logger.WithContext(context.Background()).Warn("still fine")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	var requested string
	provider := providerFunc(func(name string) interfaces.Logger {
		requested = name
		return &recordingLogger{}
	})

	logger := ModuleLogger(provider, "blog.generator")
	if requested != "blog.generator" {
		t.Fatalf("expected provider to receive module name, got %q", requested)
	}

	recorder, ok := logger.(*recordingLogger)
	if !ok {
		t.Fatalf("expected fields-capable logger, got %T", logger)
	}
	if recorder.fields["module"] != "blog.generator" {
		t.Fatalf("expected module field, got %#v", recorder.fields)
	}
}

func TestWithFieldsFallsBackForPlainLoggers(t *testing.T) {
	plain := NoOp()
	got := WithFields(plain, nil)
	if got != plain {
		t.Fatalf("expected empty fields to return the logger unchanged")
	}
}
