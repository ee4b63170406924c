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

// Input controls a form field may declare.
var formComponents = map[string]bool{
	"text":     true,
	"textarea": true,
	"number":   true,
	"select":   true,
	"date":     true,
}

func CreateFormModel(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createFormRequest struct {
			Name           string          `json:"name"`
			Description    string          `json:"description"`
			StorageTableID string          `json:"storageTableId"`
			Schema         json.RawMessage `json:"schema"`
		}

		var request createFormRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		var messages []string
		if strings.TrimSpace(request.Name) == "" {
			messages = append(messages, "name is required")
		}
		tableID, err := uuid.Parse(request.StorageTableID)
		if err != nil {
			messages = append(messages, "storageTableId is required")
		}
		fields := utils.DocumentFields(request.Schema)
		if len(fields) == 0 {
			messages = append(messages, "schema.fields must contain at least one field")
		}
		for i, field := range fields {
			if utils.FieldString(field, "column") == "" {
				messages = append(messages, fmt.Sprintf("schema.fields[%d].column is required", i))
			}
			if utils.FieldString(field, "label") == "" {
				messages = append(messages, fmt.Sprintf("schema.fields[%d].label is required", i))
			}
			component := utils.FieldString(field, "component")
			if component == "" || !formComponents[component] {
				messages = append(messages, fmt.Sprintf("schema.fields[%d].component must be one of text, textarea, number, select, date", i))
			}
		}
		if len(messages) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(messages, ", ")})
			return
		}

		form := entity.FormModel{
			Name:           request.Name,
			Description:    request.Description,
			StorageTableID: tableID,
			Schema:         []byte(request.Schema),
		}

		if err := ctx.DB.Create(&form).Error; err != nil {
			ctx.Logger.Error("Failed to create form model", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create form model"})
			return
		}

		var created entity.FormModel
		if err := ctx.DB.Preload("Operations").Preload("StorageTable").First(&created, "id = ?", form.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.Logger.Error("Created form model missing on re-read", zap.Error(err))
			} else {
				ctx.Logger.Error("Failed to load created form model", zap.Error(err))
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created form model"})
			return
		}

		c.JSON(http.StatusCreated, serializer.FormModel(&created, true))
	}
}

func GetFormModels(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var forms []entity.FormModel
		if err := ctx.DB.Preload("Operations").Preload("StorageTable").Order("created_at DESC").Find(&forms).Error; err != nil {
			ctx.Logger.Error("Failed to fetch form models", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch form models"})
			return
		}

		response := make([]map[string]interface{}, 0, len(forms))
		for i := range forms {
			response = append(response, serializer.FormModel(&forms[i], true))
		}

		c.JSON(http.StatusOK, gin.H{"formModels": response})
	}
}
