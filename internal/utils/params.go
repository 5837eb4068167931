package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetID parses the numeric route parameter name.
func GetID(ctx *gin.Context, name string) (uint, error) {
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
