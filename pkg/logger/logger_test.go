package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandler_RequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h, err := newHandler(&buf, "debug", "json")
	require.NoError(t, err)

	l := slog.New(h).WithGroup("kafka").With("topic", "invoice-events")
	ctx := WithRequestID(context.Background(), "req-1")

	l.InfoContext(ctx, "sent")

	var record map[string]any

	err = json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)
	require.Equal(t, "sent", record["msg"])
	require.Equal(t, "req-1", record["kafka"].(map[string]any)["request_id"])
	require.Equal(t, "req-1", RequestIDFromCtx(ctx))
	require.Empty(t, RequestIDFromCtx(context.Background()))
}

func TestNewHandler_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h, err := newHandler(&buf, "warn", "text")
	require.NoError(t, err)

	slog.New(h).Info("skipped")
	require.Zero(t, buf.Len())

	_, err = newHandler(&buf, "loud", "json")
	require.Error(t, err)
}
