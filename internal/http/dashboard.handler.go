package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/fabrika/internal/appcontext"
	"github.com/kerem-kaynak/fabrika/internal/entity"
	"github.com/kerem-kaynak/fabrika/internal/serializer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetDashboard returns all five entity lists in one combined payload,
// newest first, each loaded with the relations its serialization needs.
func GetDashboard(ctx *appcontext.Context) gin.HandlerFunc {
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
			ctx.Logger.Error("Failed to fetch storage models for dashboard", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch storage models"})
			return
		}

		var views []entity.ViewModel
		if err := ctx.DB.Preload("StorageTable").Order("created_at DESC").Find(&views).Error; err != nil {
			ctx.Logger.Error("Failed to fetch view models for dashboard", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch view models"})
			return
		}

		var forms []entity.FormModel
		if err := ctx.DB.Preload("Operations").Preload("StorageTable").Order("created_at DESC").Find(&forms).Error; err != nil {
			ctx.Logger.Error("Failed to fetch form models for dashboard", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch form models"})
			return
		}

		var operations []entity.OperationModel
		if err := ctx.DB.Preload("FormModel").Order("created_at DESC").Find(&operations).Error; err != nil {
			ctx.Logger.Error("Failed to fetch operation models for dashboard", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch operation models"})
			return
		}

		var domains []entity.DomainModel
		err = ctx.DB.
			Preload("Tables.StorageTable").
			Preload("Views.ViewModel").
			Preload("Forms.FormModel").
			Preload("Operations.OperationModel").
			Order("created_at DESC").
			Find(&domains).Error
		if err != nil {
			ctx.Logger.Error("Failed to fetch domain models for dashboard", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch domain models"})
			return
		}

		c.JSON(http.StatusOK, serializer.Dashboard(models, views, forms, operations, domains))
	}
}
