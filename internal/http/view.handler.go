package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kerem-kaynak/fabrika/internal/appcontext"
	"github.com/kerem-kaynak/fabrika/internal/entity"
	"github.com/kerem-kaynak/fabrika/internal/serializer"
	"github.com/kerem-kaynak/fabrika/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func CreateViewModel(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createViewRequest struct {
			Name           string          `json:"name"`
			Description    string          `json:"description"`
			StorageModelID string          `json:"storageModelId"`
			StorageTableID string          `json:"storageTableId"`
			Layout         json.RawMessage `json:"layout"`
		}

		var request createViewRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		var messages []string
		if strings.TrimSpace(request.Name) == "" {
			messages = append(messages, "name is required")
		}
		modelID, err := uuid.Parse(request.StorageModelID)
		if err != nil {
			messages = append(messages, "storageModelId is required")
		}
		tableID, err := uuid.Parse(request.StorageTableID)
		if err != nil {
			messages = append(messages, "storageTableId is required")
		}
		fields := utils.DocumentFields(request.Layout)
		if len(fields) == 0 {
			messages = append(messages, "layout.fields must contain at least one field")
		}
		for i, field := range fields {
			if utils.FieldString(field, "column") == "" {
				messages = append(messages, fmt.Sprintf("layout.fields[%d].column is required", i))
			}
			if utils.FieldString(field, "label") == "" {
				messages = append(messages, fmt.Sprintf("layout.fields[%d].label is required", i))
			}
		}
		if len(messages) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(messages, ", ")})
			return
		}

		view := entity.ViewModel{
			Name:           request.Name,
			Description:    request.Description,
			StorageModelID: modelID,
			StorageTableID: tableID,
			Layout:         []byte(request.Layout),
		}

		if err := ctx.DB.Create(&view).Error; err != nil {
			ctx.Logger.Error("Failed to create view model", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create view model"})
			return
		}

		var created entity.ViewModel
		if err := ctx.DB.Preload("StorageTable").First(&created, "id = ?", view.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.Logger.Error("Created view model missing on re-read", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created view model"})
				return
			}
			ctx.Logger.Error("Failed to load created view model", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created view model"})
			return
		}

		c.JSON(http.StatusCreated, serializer.ViewModel(&created))
	}
}

func GetViewModels(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var views []entity.ViewModel
		if err := ctx.DB.Preload("StorageTable").Order("created_at DESC").Find(&views).Error; err != nil {
			ctx.Logger.Error("Failed to fetch view models", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch view models"})
			return
		}

		response := make([]map[string]interface{}, 0, len(views))
		for i := range views {
			response = append(response, serializer.ViewModel(&views[i]))
		}

		c.JSON(http.StatusOK, gin.H{"viewModels": response})
	}
}
