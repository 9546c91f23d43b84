package handler

import (
	"net/http"

	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID reads the authenticated principal set by the auth
// middleware. Aborts with 401 when absent or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, _ := c.Get("userID")
	s, _ := raw.(string)
	id, err := uuid.Parse(s)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid user identity"))
		return uuid.Nil, false
	}
	return id, true
}
