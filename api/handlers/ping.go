package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HandlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": getPongMessage(),
	})
}

func getPongMessage() string {
	return "pong"
}
