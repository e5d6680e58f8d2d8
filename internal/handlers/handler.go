package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/nullable"
	"github.com/taskboard-dev/taskboard/internal/store"
	"github.com/taskboard-dev/taskboard/internal/types"
	"github.com/taskboard-dev/taskboard/internal/utils"
	"go.uber.org/zap"
)

type Handler struct {
	store  *store.Store
	logger *zap.SugaredLogger
}

func New(s *store.Store, logger *zap.SugaredLogger) *Handler {
	return &Handler{store: s, logger: logger}
}

// ValidationError is a missing or malformed input; it maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

func (h *Handler) respondError(ctx *gin.Context, err error) {
	var validationErr *ValidationError
	var notFoundErr *store.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})

	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})

	case errors.Is(err, store.ErrDuplicate):
		ctx.JSON(http.StatusConflict, gin.H{"error": types.MsgDuplicateUser})

	default:
		_ = ctx.Error(err)
		h.logger.Errorw("request failed",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"request_id", utils.GetRequestID(ctx),
			"err", err,
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// idParam reads the :id path parameter. An unparsable id cannot name an
// existing row, so it is answered as not found.
func (h *Handler) idParam(ctx *gin.Context, entity string) (uint, bool) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		h.respondError(ctx, &store.NotFoundError{Entity: entity})
		return 0, false
	}

	return id, true
}

func (h *Handler) bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		h.logger.Debugw("invalid request body", "path", ctx.Request.URL.Path, "err", err)

		if errors.Is(err, io.EOF) {
			h.respondError(ctx, invalid(types.MsgMissingFields))
		} else {
			h.respondError(ctx, invalid(types.MsgInvalidRequest+": "+err.Error()))
		}
		return false
	}

	return true
}

// notNull rejects an explicit null for a column that cannot be cleared.
func notNull[T any](n nullable.Nullable[T], field string) error {
	if n.IsNull() {
		return invalid(field + " cannot be null")
	}
	return nil
}

// timestampPatch parses an ISO-8601 value. Null or an empty string clears it.
func timestampPatch(n nullable.Nullable[string], field string) (nullable.Nullable[time.Time], error) {
	if !n.IsSpecified() {
		return nullable.Nullable[time.Time]{}, nil
	}

	raw, _ := types.Value(n)
	t, err := types.ParseTimestamp(raw)

	if err != nil {
		return nullable.Nullable[time.Time]{}, invalid(field + ": " + err.Error())
	}

	if t == nil {
		return nullable.NewNullNullable[time.Time](), nil
	}

	return nullable.NewNullableWithValue(*t), nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// valueOrZero leaves defaulting to the store when the key is omitted or null.
func valueOrZero[T any](n nullable.Nullable[T]) T {
	v, _ := types.Value(n)
	return v
}
