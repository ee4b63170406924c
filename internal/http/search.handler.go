package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/fabrika/internal/appcontext"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// Search queries the resources index over imported tables and columns.
func Search(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctx.MeilisearchClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is not configured"})
			return
		}

		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}

		result, err := ctx.MeilisearchClient.Index("resources").Search(query, &meilisearch.SearchRequest{
			Limit: 20,
		})
		if err != nil {
			ctx.Logger.Error("Failed to search resources", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search resources"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"hits": result.Hits})
	}
}
