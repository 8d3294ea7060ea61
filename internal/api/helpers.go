package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

type ErrorResponse struct {
	Message     string              `json:"message"`
	Description string              `json:"description,omitempty"`
	Fields      map[string][]string `json:"fields,omitempty"`
}

func SendJSONErr(ctx context.Context, w http.ResponseWriter, code int, originErr error, msgToSend string) {
	resp := ErrorResponse{Message: msgToSend}

	if originErr != nil {
		slog.ErrorContext(ctx, "api error", "error", originErr.Error())

		resp.Description = originErr.Error()
	} else {
		slog.ErrorContext(ctx, "api error", "error", msgToSend)
	}

	var verr *entity.ValidationError
	if errors.As(originErr, &verr) {
		resp.Fields = verr.ByField()
	}

	SendJSON(ctx, w, code, resp)
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.ErrorContext(ctx, "encode response", "error", err)
	}
}

// sendServiceErr maps a service error to the response status.
func sendServiceErr(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid input")
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, "Not found")
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, msg)
	}
}
