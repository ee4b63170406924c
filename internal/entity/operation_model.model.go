package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Operation types form a closed set. CUSTOM covers anything that is not
// plain CRUD against a storage model.
const (
	OperationTypeCreate = "CREATE"
	OperationTypeRead   = "READ"
	OperationTypeUpdate = "UPDATE"
	OperationTypeDelete = "DELETE"
	OperationTypeCustom = "CUSTOM"
)

type OperationModel struct {
	gorm.Model
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Type           string         `gorm:"type:varchar(16);not null;default:READ" json:"type"`
	Endpoint       string         `gorm:"type:varchar(512)" json:"endpoint"`
	Method         string         `gorm:"type:varchar(16)" json:"method"`
	StorageModelID *uuid.UUID     `gorm:"type:uuid;index" json:"storage_model_id"`
	FormModelID    *uuid.UUID     `gorm:"type:uuid;index" json:"form_model_id"`
	RequestSchema  datatypes.JSON `gorm:"type:jsonb" json:"request_schema"`
	ResponseSchema datatypes.JSON `gorm:"type:jsonb" json:"response_schema"`
	FormModel      *FormModel     `gorm:"foreignKey:FormModelID" json:"form_model,omitempty"`
}

func (o *OperationModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Type == "" {
		o.Type = OperationTypeRead
	}
	return nil
}
