package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/woongiiit/DailyQuest-Backend/pkg/errors"
)

// AbortWithError writes the error envelope every handler uses. Internal
// errors are masked so driver details never reach the client.
func AbortWithError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)

	code := errors.CodeOf(err)
	message := err.Error()
	if status >= 500 {
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
