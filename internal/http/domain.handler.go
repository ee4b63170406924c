package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/fabrika/internal/appcontext"
	"github.com/kerem-kaynak/fabrika/internal/entity"
	"github.com/kerem-kaynak/fabrika/internal/serializer"
	"github.com/kerem-kaynak/fabrika/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func CreateDomainModel(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createDomainRequest struct {
			Name              string          `json:"name"`
			Description       string          `json:"description"`
			Schema            json.RawMessage `json:"schema"`
			StorageTableIDs   []string        `json:"storageTableIds"`
			ViewModelIDs      []string        `json:"viewModelIds"`
			FormModelIDs      []string        `json:"formModelIds"`
			OperationModelIDs []string        `json:"operationModelIds"`
		}

		var request createDomainRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		var messages []string
		if strings.TrimSpace(request.Name) == "" {
			messages = append(messages, "name is required")
		}
		fields := utils.DocumentFields(request.Schema)
		if len(fields) == 0 {
			messages = append(messages, "schema.fields must contain at least one field")
		}
		for i, field := range fields {
			if utils.FieldString(field, "key") == "" {
				messages = append(messages, fmt.Sprintf("schema.fields[%d].key is required", i))
			}
			if utils.FieldString(field, "name") == "" {
				messages = append(messages, fmt.Sprintf("schema.fields[%d].name is required", i))
			}
		}

		tableIDs, bad := utils.ParseIDs(request.StorageTableIDs)
		if bad != "" {
			messages = append(messages, fmt.Sprintf("storageTableIds contains an invalid id: %s", bad))
		}
		viewIDs, bad := utils.ParseIDs(request.ViewModelIDs)
		if bad != "" {
			messages = append(messages, fmt.Sprintf("viewModelIds contains an invalid id: %s", bad))
		}
		formIDs, bad := utils.ParseIDs(request.FormModelIDs)
		if bad != "" {
			messages = append(messages, fmt.Sprintf("formModelIds contains an invalid id: %s", bad))
		}
		operationIDs, bad := utils.ParseIDs(request.OperationModelIDs)
		if bad != "" {
			messages = append(messages, fmt.Sprintf("operationModelIds contains an invalid id: %s", bad))
		}

		if len(messages) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(messages, ", ")})
			return
		}

		domain := entity.DomainModel{
			Name:        request.Name,
			Description: request.Description,
			Schema:      []byte(request.Schema),
		}
		for _, id := range tableIDs {
			domain.Tables = append(domain.Tables, entity.DomainModelTable{StorageTableID: id})
		}
		for _, id := range viewIDs {
			domain.Views = append(domain.Views, entity.DomainModelView{ViewModelID: id})
		}
		for _, id := range formIDs {
			domain.Forms = append(domain.Forms, entity.DomainModelForm{FormModelID: id})
		}
		for _, id := range operationIDs {
			domain.Operations = append(domain.Operations, entity.DomainModelOperation{OperationModelID: id})
		}

		// One create persists the domain and all join rows in a single
		// transaction, so a rejected link leaves nothing behind.
		if err := ctx.DB.Create(&domain).Error; err != nil {
			ctx.Logger.Error("Failed to create domain model", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create domain model"})
			return
		}

		var created entity.DomainModel
		err := ctx.DB.
			Preload("Tables.StorageTable").
			Preload("Views.ViewModel").
			Preload("Forms.FormModel").
			Preload("Operations.OperationModel").
			First(&created, "id = ?", domain.ID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.Logger.Error("Created domain model missing on re-read", zap.Error(err))
			} else {
				ctx.Logger.Error("Failed to load created domain model", zap.Error(err))
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created domain model"})
			return
		}

		c.JSON(http.StatusCreated, serializer.DomainModel(&created))
	}
}

func GetDomainModels(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var domains []entity.DomainModel
		err := ctx.DB.
			Preload("Tables.StorageTable").
			Preload("Views.ViewModel").
			Preload("Forms.FormModel").
			Preload("Operations.OperationModel").
			Order("created_at DESC").
			Find(&domains).Error
		if err != nil {
			ctx.Logger.Error("Failed to fetch domain models", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch domain models"})
			return
		}

		response := make([]map[string]interface{}, 0, len(domains))
		for i := range domains {
			response = append(response, serializer.DomainModel(&domains[i]))
		}

		c.JSON(http.StatusOK, gin.H{"domainModels": response})
	}
}
