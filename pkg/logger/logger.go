package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type ctxKey int8

const (
	ctxKeyRequestID ctxKey = iota
)

// Handler adds the request id from the context to every record.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		record.Add("request_id", v)
	}

	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{h.Handler.WithGroup(name)}
}

// New builds the logger and sets it as the default one.
func New(level, format string) (*slog.Logger, error) {
	h, err := newHandler(os.Stdout, level, format)
	if err != nil {
		return nil, err
	}

	l := slog.New(h)

	slog.SetDefault(l)

	return l, nil
}

func newHandler(w io.Writer, level, format string) (slog.Handler, error) {
	var sLevel slog.Level

	err := sLevel.UnmarshalText([]byte(level))
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level: sLevel,
	}

	if strings.EqualFold(format, "text") {
		return &Handler{slog.NewTextHandler(w, opts)}, nil
	}

	return &Handler{slog.NewJSONHandler(w, opts)}, nil
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

func RequestIDFromCtx(ctx context.Context) string {
	requestID, ok := ctx.Value(ctxKeyRequestID).(string)
	if !ok {
		return ""
	}

	return requestID
}
