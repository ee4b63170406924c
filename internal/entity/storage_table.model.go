package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StorageTable struct {
	gorm.Model
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StorageModelID uuid.UUID      `gorm:"type:uuid;not null;index" json:"storage_model_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Schema         datatypes.JSON `gorm:"type:jsonb" json:"schema"`
	Forms          []FormModel    `gorm:"foreignKey:StorageTableID" json:"forms"`
	Views          []ViewModel    `gorm:"foreignKey:StorageTableID" json:"views"`
}

func (t *StorageTable) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
