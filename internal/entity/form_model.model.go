package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FormModel struct {
	gorm.Model
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name           string           `gorm:"type:varchar(255);not null" json:"name"`
	Description    string           `gorm:"type:text" json:"description"`
	StorageTableID uuid.UUID        `gorm:"type:uuid;not null;index" json:"storage_table_id"`
	Schema         datatypes.JSON   `gorm:"type:jsonb" json:"schema"`
	Operations     []OperationModel `gorm:"foreignKey:FormModelID" json:"operations"`
	StorageTable   *StorageTable    `gorm:"foreignKey:StorageTableID" json:"storage_table,omitempty"`
}

func (f *FormModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
