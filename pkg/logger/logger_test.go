package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))
}

func TestInjectLogger(t *testing.T) {
	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")

	ctx := InjectLogger(context.Background(), reqLog)
	WithCtx(ctx).Info("order created", "order_id", 7)

	assert.Contains(t, buf.String(), "request_id=abc")
	assert.Contains(t, buf.String(), "order_id=7")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	slog.New(h).With("subject", "alice").Info("hello")

	assert.Contains(t, a.String(), "subject=alice")
	assert.Contains(t, b.String(), `"subject":"alice"`)
}

func TestConsoleHandlerByEnv(t *testing.T) {
	var buf bytes.Buffer
	slog.New(consoleHandler(&buf, "production")).Info("x")
	assert.Contains(t, buf.String(), `"msg":"x"`)

	buf.Reset()
	slog.New(consoleHandler(&buf, "local")).Debug("y")
	assert.Contains(t, buf.String(), "msg=y")
}
