// Package logger provides a structured, levelled logger built on log/slog.
//
// Handlers are chosen from APP_ENV: JSON for production (log aggregators),
// text for development. WithCtx returns a logger pre-tagged with the
// request_id injected by the request-logging middleware, so every line a
// handler writes is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("refund issued", "order_id", orderID, "amount_paise", amount)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/hydroline/hydroline/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the per-request logger stored in ctx, or the base logger
// when none is present (e.g. outside an HTTP request).
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the request-logging middleware; not usually needed elsewhere.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// EnableMongoSink tees every log record into MongoDB when LOG_MONGO_URI is
// configured. Returns a close function that flushes the sink; it is a no-op
// when the sink is disabled or unreachable.
func EnableMongoSink() func() {
	uri := config.LogMongoURI()
	if uri == "" {
		return func() {}
	}

	mh, err := NewMongoHandler(uri, config.LogMongoDB(), config.LogMongoCollection())
	if err != nil {
		L.Warn("logger: mongo sink disabled", "error", err)
		return func() {}
	}

	L = slog.New(NewTeeHandler(L.Handler(), mh))
	slog.SetDefault(L)
	return func() { _ = mh.Close() }
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
