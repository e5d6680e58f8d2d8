package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"
	"github.com/taskboard-dev/taskboard/internal/types"
	"go.uber.org/zap"
)

// RequestID tags each request with an id, reusing a caller-supplied
// X-Request-ID header when present.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(types.RequestIDHeader)

		if id == "" {
			id = ksuid.New().String()
		}

		ctx.Set(types.ContextRequestIDKey, id)
		ctx.Header(types.RequestIDHeader, id)
		ctx.Next()
	}
}

func Logger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path

		ctx.Next()

		fields := []interface{}{
			"method", ctx.Request.Method,
			"path", path,
			"status", ctx.Writer.Status(),
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000.0,
			"size", ctx.Writer.Size(),
			"remote", ctx.ClientIP(),
			"request_id", ctx.GetString(types.ContextRequestIDKey),
		}

		if len(ctx.Errors) > 0 {
			logger.Warnw("http request", append(fields, "errors", ctx.Errors.String())...)
			return
		}

		logger.Debugw("http request", fields...)
	}
}
