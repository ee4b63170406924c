package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StorageModel struct {
	gorm.Model
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name        string           `gorm:"type:varchar(255);not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Database    string           `gorm:"type:varchar(255);not null" json:"database"`
	Connection  string           `gorm:"type:varchar(512)" json:"connection"`
	Schema      datatypes.JSON   `gorm:"type:jsonb" json:"schema"`
	Tables      []StorageTable   `gorm:"foreignKey:StorageModelID" json:"tables"`
	Views       []ViewModel      `gorm:"foreignKey:StorageModelID" json:"views"`
	Operations  []OperationModel `gorm:"foreignKey:StorageModelID" json:"operations"`
}

func (m *StorageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
