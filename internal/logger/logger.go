package logger

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

var current atomic.Pointer[slog.Logger]

// Init инициализирует глобальный логгер.
// env: "development" - текстовый формат и уровень debug, иначе JSON.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

// InitWithWriter - то же, что Init, но с произвольным выводом (используется в тестах).
func InitWithWriter(env string, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	var handler slog.Handler
	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)
	current.Store(l)
	slog.SetDefault(l)
}

// GetLogger возвращает глобальный логгер
func GetLogger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	// Init еще не вызывался (тесты, утилиты)
	return slog.Default()
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal логирует ошибку и завершает программу
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// ============================================
// Специализированные логгеры
// ============================================

// DBLog логирует операцию с хранилищем. Успешные операции пишутся на уровне debug.
func DBLog(operation string, duration time.Duration, err error) {
	fields := []any{
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("storage operation failed", fields...)
		return
	}
	GetLogger().Debug("storage operation", fields...)
}

// WorkerLog логирует операцию фонового воркера
func WorkerLog(worker, operation string, affected int64, err error) {
	fields := []any{
		"worker", worker,
		"operation", operation,
		"affected", affected,
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("worker operation failed", fields...)
		return
	}
	GetLogger().Info("worker operation completed", fields...)
}
