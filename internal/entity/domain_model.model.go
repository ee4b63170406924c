package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DomainModel struct {
	gorm.Model
	ID          uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	Name        string                 `gorm:"type:varchar(255);not null" json:"name"`
	Description string                 `gorm:"type:text" json:"description"`
	Schema      datatypes.JSON         `gorm:"type:jsonb" json:"schema"`
	Tables      []DomainModelTable     `gorm:"foreignKey:DomainModelID" json:"tables"`
	Views       []DomainModelView      `gorm:"foreignKey:DomainModelID" json:"views"`
	Forms       []DomainModelForm      `gorm:"foreignKey:DomainModelID" json:"forms"`
	Operations  []DomainModelOperation `gorm:"foreignKey:DomainModelID" json:"operations"`
}

func (d *DomainModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Join rows linking a domain to the artifacts it bundles. Associative only,
// no ownership: deleting a domain never cascades into the linked entity.

type DomainModelTable struct {
	gorm.Model
	ID             uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	DomainModelID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"domain_model_id"`
	StorageTableID uuid.UUID     `gorm:"type:uuid;not null;index" json:"storage_table_id"`
	StorageTable   *StorageTable `gorm:"foreignKey:StorageTableID" json:"storage_table,omitempty"`
}

func (l *DomainModelTable) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type DomainModelView struct {
	gorm.Model
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DomainModelID uuid.UUID  `gorm:"type:uuid;not null;index" json:"domain_model_id"`
	ViewModelID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"view_model_id"`
	ViewModel     *ViewModel `gorm:"foreignKey:ViewModelID" json:"view_model,omitempty"`
}

func (l *DomainModelView) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type DomainModelForm struct {
	gorm.Model
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DomainModelID uuid.UUID  `gorm:"type:uuid;not null;index" json:"domain_model_id"`
	FormModelID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"form_model_id"`
	FormModel     *FormModel `gorm:"foreignKey:FormModelID" json:"form_model,omitempty"`
}

func (l *DomainModelForm) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type DomainModelOperation struct {
	gorm.Model
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DomainModelID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"domain_model_id"`
	OperationModelID uuid.UUID       `gorm:"type:uuid;not null;index" json:"operation_model_id"`
	OperationModel   *OperationModel `gorm:"foreignKey:OperationModelID" json:"operation_model,omitempty"`
}

func (l *DomainModelOperation) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
