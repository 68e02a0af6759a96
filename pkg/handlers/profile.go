package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-cms/pkg/models"
	"blog-cms/pkg/services"
)

func GetProfile(c *gin.Context) {
	profile, body, err := services.LoadProfile()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "body": body})
}

func SaveProfile(c *gin.Context) {
	var req struct {
		Profile models.AuthorProfile `json:"profile"`
		Body    string               `json:"body"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	if msgs := services.ValidateProfile(req.Profile); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile", "details": msgs})
		return
	}

	if err := services.SaveProfile(req.Profile, req.Body); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "saved"})
}
