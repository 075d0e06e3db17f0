// Package logger provides the service's structured, levelled logger built on
// log/slog.
//
// Handlers should log through WithCtx so every line carries the request id
// attached by the request logging middleware:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", o.ID)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/pizzeria/config"
)

var L *slog.Logger

func init() {
	L = slog.New(consoleHandler(os.Stdout, config.AppEnv()))
	slog.SetDefault(L)
}

// consoleHandler returns JSON in production and human-readable text elsewhere.
func consoleHandler(w io.Writer, env string) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Setup re-initialises the base logger and, when mongoURI is set, tees every
// record into MongoDB. The returned func flushes and closes the sink.
func Setup(env, mongoURI string) (func(), error) {
	console := consoleHandler(os.Stdout, env)
	if mongoURI == "" {
		L = slog.New(console)
		slog.SetDefault(L)
		return func() {}, nil
	}

	sink, err := NewMongoHandler(mongoURI, "pizzeria", "logs")
	if err != nil {
		L = slog.New(console)
		slog.SetDefault(L)
		return func() {}, err
	}

	L = slog.New(NewMultiHandler(console, sink))
	slog.SetDefault(L)
	return sink.Close, nil
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the request logging middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
