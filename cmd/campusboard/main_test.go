package main

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("development uses text handler at debug level", func(t *testing.T) {
		logger := newLogger(true)

		if _, ok := logger.Handler().(*slog.TextHandler); !ok {
			t.Errorf("handler: got %T, want *slog.TextHandler", logger.Handler())
		}
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("debug level should be enabled in development")
		}
	})

	t.Run("production uses json handler at info level", func(t *testing.T) {
		logger := newLogger(false)

		if _, ok := logger.Handler().(*slog.JSONHandler); !ok {
			t.Errorf("handler: got %T, want *slog.JSONHandler", logger.Handler())
		}
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("debug level should be disabled outside development")
		}
		if !logger.Enabled(context.Background(), slog.LevelInfo) {
			t.Error("info level should be enabled outside development")
		}
	})
}
