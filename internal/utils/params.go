package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetIDParam parses a positive integer path parameter.
func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New("ID not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil || id == 0 {
		return 0, errors.New("Invalid ID")
	}

	return uint(id), nil
}

// GetUintQuery returns the query value as a pointer, or nil when it is absent,
// not a number, or zero.
func GetUintQuery(ctx *gin.Context, name string) *uint {
	raw, ok := ctx.GetQuery(name)

	if !ok {
		return nil
	}

	n, err := strconv.ParseUint(raw, 10, 32)

	if err != nil || n == 0 {
		return nil
	}

	id := uint(n)
	return &id
}

// GetBoolQuery reports whether the query value parses as true.
func GetBoolQuery(ctx *gin.Context, name string) bool {
	b, err := strconv.ParseBool(ctx.Query(name))
	return err == nil && b
}
