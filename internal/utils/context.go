package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/types"
)

func GetRequestID(ctx *gin.Context) string {
	return ctx.GetString(types.ContextRequestIDKey)
}
