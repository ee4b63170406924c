package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kerem-kaynak/fabrika/internal/appcontext"
	"github.com/kerem-kaynak/fabrika/internal/entity"
	"github.com/kerem-kaynak/fabrika/internal/serializer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var operationTypes = map[string]bool{
	entity.OperationTypeCreate: true,
	entity.OperationTypeRead:   true,
	entity.OperationTypeUpdate: true,
	entity.OperationTypeDelete: true,
	entity.OperationTypeCustom: true,
}

func CreateOperationModel(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createOperationRequest struct {
			Name           string          `json:"name"`
			Description    string          `json:"description"`
			Type           string          `json:"type"`
			Endpoint       string          `json:"endpoint"`
			Method         string          `json:"method"`
			StorageModelID string          `json:"storageModelId"`
			FormModelID    string          `json:"formModelId"`
			RequestSchema  json.RawMessage `json:"requestSchema"`
			ResponseSchema json.RawMessage `json:"responseSchema"`
		}

		var request createOperationRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		var messages []string
		if strings.TrimSpace(request.Name) == "" {
			messages = append(messages, "name is required")
		}

		operationType := request.Type
		if operationType == "" {
			operationType = entity.OperationTypeRead
		}
		if !operationTypes[operationType] {
			messages = append(messages, "type must be one of CREATE, READ, UPDATE, DELETE, CUSTOM")
		}

		var storageModelID *uuid.UUID
		if request.StorageModelID != "" {
			id, err := uuid.Parse(request.StorageModelID)
			if err != nil {
				messages = append(messages, "storageModelId must be a valid id")
			} else {
				storageModelID = &id
			}
		}
		var formModelID *uuid.UUID
		if request.FormModelID != "" {
			id, err := uuid.Parse(request.FormModelID)
			if err != nil {
				messages = append(messages, "formModelId must be a valid id")
			} else {
				formModelID = &id
			}
		}

		if len(messages) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(messages, ", ")})
			return
		}

		operation := entity.OperationModel{
			Name:           request.Name,
			Description:    request.Description,
			Type:           operationType,
			Endpoint:       request.Endpoint,
			Method:         request.Method,
			StorageModelID: storageModelID,
			FormModelID:    formModelID,
			RequestSchema:  []byte(request.RequestSchema),
			ResponseSchema: []byte(request.ResponseSchema),
		}

		if err := ctx.DB.Create(&operation).Error; err != nil {
			ctx.Logger.Error("Failed to create operation model", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create operation model"})
			return
		}

		var created entity.OperationModel
		if err := ctx.DB.Preload("FormModel").First(&created, "id = ?", operation.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.Logger.Error("Created operation model missing on re-read", zap.Error(err))
			} else {
				ctx.Logger.Error("Failed to load created operation model", zap.Error(err))
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created operation model"})
			return
		}

		c.JSON(http.StatusCreated, serializer.OperationModel(&created, true))
	}
}

func GetOperationModels(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var operations []entity.OperationModel
		if err := ctx.DB.Preload("FormModel").Order("created_at DESC").Find(&operations).Error; err != nil {
			ctx.Logger.Error("Failed to fetch operation models", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch operation models"})
			return
		}

		response := make([]map[string]interface{}, 0, len(operations))
		for i := range operations {
			response = append(response, serializer.OperationModel(&operations[i], true))
		}

		c.JSON(http.StatusOK, gin.H{"operationModels": response})
	}
}
