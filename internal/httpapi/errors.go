package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/service"
	"github.com/sandeepkv93/daybook/internal/storage"
)

const (
	CodeNotFound          = "not_found"
	CodeInvalidDateFormat = "invalid_date_format"
	CodeUnknownCycle      = "unknown_cycle"
	CodeInvalidArgument   = "invalid_argument"
	CodeNotRecurring      = "not_recurring"
	CodeConflict          = "conflict"
	CodeDateOutOfRange    = "date_out_of_range"
	CodeInternal          = "internal"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps a domain error to a status and a stable code. Order matters:
// date and cycle errors are also wrapped in service.ErrInvalidInput.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, model.ErrInvalidDateFormat):
		return http.StatusBadRequest, CodeInvalidDateFormat
	case errors.Is(err, model.ErrUnknownCycle):
		return http.StatusBadRequest, CodeUnknownCycle
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidArgument
	case errors.Is(err, model.ErrNonRecurring):
		return http.StatusConflict, CodeNotRecurring
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, model.ErrDateOutOfRange):
		return http.StatusConflict, CodeDateOutOfRange
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{Code: code, Message: msg}})
}

func badRequest(c *gin.Context, code, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errorBody{Code: code, Message: msg}})
}
