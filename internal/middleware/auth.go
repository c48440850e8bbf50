package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/woongiiit/DailyQuest-Backend/config"
	"github.com/woongiiit/DailyQuest-Backend/pkg/errors"
	"github.com/woongiiit/DailyQuest-Backend/pkg/utils"
)

const userIDKey = "userID"

// Auth validates the bearer token and stores the caller's id on the
// request context. Every route below /api except auth uses it.
func Auth(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortWithError(c, errors.Unauthorized("missing bearer token"))
			return
		}

		userID, err := utils.ParseJWTToken(token, cfg)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated caller's id. Only call it from
// handlers behind Auth.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}

func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
