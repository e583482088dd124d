package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends data as the response body
func JSONResponse(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// JSONMessage sends a {"message": ...} confirmation
func JSONMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// JSONError sends an {"error_message": ...} body and attaches err to the
// context so the request logger can record the cause without exposing it.
func JSONError(c *gin.Context, status int, err error, message string) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error_message": message})
}
