package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes the API's error envelope: a status code and a {message} body.
func Error(ctx *gin.Context, code int, message string) {
	ctx.JSON(code, gin.H{"message": message})
}

// Success writes a 200 response with the given payload.
func Success(ctx *gin.Context, payload gin.H) {
	ctx.JSON(http.StatusOK, payload)
}
