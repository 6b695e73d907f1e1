package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes the canonical {"error": msg} body with the given status. All
// JSON error responses in the package go through here.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// AbortUnauthorized ends the handler chain with a 401 so handlers after the
// auth middleware never run on an unauthenticated request.
func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// Status-specific shorthands over Error.
func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func Forbidden(c *gin.Context, msg string)  { Error(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

func Unauthorized(c *gin.Context) { Error(c, http.StatusUnauthorized, "unauthorized") }
