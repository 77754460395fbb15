package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	ErrKindInvalidPayload = "invalid_payload"
	ErrKindStorage        = "storage_error"
	ErrKindInternal       = "internal_error"
)

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, kind, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Error:   kind,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps a service error to a response. serverMessage is what the
// caller sees for server-side faults; the underlying error is only logged.
func HandleServiceError(c *gin.Context, err error, serverMessage string) {
	var verr *ValidationError

	switch {
	case errors.As(err, &verr):
		log.Debug().Str("trace_id", traceID(c)).Str("kind", verr.Kind).Msg("rejected request")
		RespondError(c, http.StatusBadRequest, verr.Kind, verr.Message)
	case errors.Is(err, ErrStorage):
		log.Error().Err(err).Str("trace_id", traceID(c)).Str("path", c.FullPath()).Msg("storage failure")
		RespondError(c, http.StatusInternalServerError, ErrKindStorage, serverMessage)
	case errors.Is(err, ErrConfiguration):
		log.Error().Err(err).Str("trace_id", traceID(c)).Msg("storage misconfigured")
		RespondError(c, http.StatusInternalServerError, ErrKindStorage, serverMessage)
	default:
		log.Error().Err(err).Str("trace_id", traceID(c)).Msg("unknown error")
		RespondError(c, http.StatusInternalServerError, ErrKindInternal, serverMessage)
	}
}
