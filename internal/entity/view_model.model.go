package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ViewModel struct {
	gorm.Model
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	StorageModelID uuid.UUID      `gorm:"type:uuid;not null;index" json:"storage_model_id"`
	StorageTableID uuid.UUID      `gorm:"type:uuid;not null;index" json:"storage_table_id"`
	Layout         datatypes.JSON `gorm:"type:jsonb" json:"layout"`
	StorageTable   *StorageTable  `gorm:"foreignKey:StorageTableID" json:"storage_table,omitempty"`
}

func (v *ViewModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
