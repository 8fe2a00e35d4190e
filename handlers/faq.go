package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListFAQsHandler returns FAQ entries in display order, optionally filtered
// by category.
func ListFAQsHandler(c *gin.Context) {
	logger := getLogger(c)
	category := c.Query("category")

	list, err := faqs.List(category)
	if err != nil {
		logger.Error("Failed to list FAQs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load FAQs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"faqs": list})
}
