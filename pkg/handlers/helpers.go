package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-cms/pkg/apperr"
	"blog-cms/pkg/logging"
)

func sessionToken(c *gin.Context) string {
	session := sessions.Default(c)
	token, _ := session.Get("access_token").(string)
	return token
}

func handleError(c *gin.Context, err error) {
	if err != nil {
		logging.L().Warn("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	switch {
	case err == nil:
		return
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case err == apperr.ErrInvalid:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case err == apperr.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case apperr.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
