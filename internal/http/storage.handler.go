package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/fabrika/internal/appcontext"
	"github.com/kerem-kaynak/fabrika/internal/entity"
	"github.com/kerem-kaynak/fabrika/internal/importer"
	"github.com/kerem-kaynak/fabrika/internal/serializer"
	"github.com/kerem-kaynak/fabrika/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateStorageModel imports a storage model from a live database: catalog
// introspection, persistence of the model with its child tables, then a
// fresh read of the whole relation graph for the response.
func CreateStorageModel(ctx *appcontext.Context, imp *importer.Importer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request importer.Request
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		if messages := request.Validate(); len(messages) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(messages, ", ")})
			return
		}

		model, err := imp.Import(c.Request.Context(), request)
		if err != nil {
			var connErr *importer.ConnectionError
			switch {
			case errors.Is(err, importer.ErrNoTables):
				c.JSON(http.StatusBadRequest, gin.H{"error": "No tables found in target database"})
			case errors.As(err, &connErr):
				ctx.Logger.Error("Failed to connect to import target", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": connErr.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				ctx.Logger.Error("Imported storage model missing on re-read", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created storage model"})
			default:
				ctx.Logger.Error("Failed to import storage model", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		// Index tables and columns for search. The model is already
		// committed, an indexing failure only gets logged.
		if ctx.MeilisearchClient != nil {
			documents := utils.StorageModelDocuments(model)
			if len(documents) > 0 {
				if _, err := ctx.MeilisearchClient.Index("resources").AddDocuments(documents, "id"); err != nil {
					ctx.Logger.Error("Failed to index imported resources", zap.Error(err))
				}
			}
		}

		c.JSON(http.StatusCreated, serializer.StorageModel(model))
	}
}

func GetStorageModels(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var models []entity.StorageModel
		err := ctx.DB.
			Preload("Tables", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
			Preload("Tables.Forms").
			Preload("Tables.Forms.Operations").
			Preload("Tables.Views").
			Preload("Operations").
			Preload("Views").
			Order("created_at DESC").
			Find(&models).Error
		if err != nil {
			ctx.Logger.Error("Failed to fetch storage models", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch storage models"})
			return
		}

		response := make([]map[string]interface{}, 0, len(models))
		for i := range models {
			response = append(response, serializer.StorageModel(&models[i]))
		}

		c.JSON(http.StatusOK, gin.H{"storageModels": response})
	}
}
