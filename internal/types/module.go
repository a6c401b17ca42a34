package types

import (
	"time"

	"github.com/google/uuid"
)

type Module struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string           `gorm:"not null;column:title" json:"title"`
	Image       string           `gorm:"column:image" json:"image"`
	Summary     string           `gorm:"not null;column:summary" json:"summary"`
	Content     string           `gorm:"not null;column:content" json:"content,omitempty"`
	CreatedByID uuid.UUID        `gorm:"type:uuid;index;not null;column:created_by_id" json:"createdById,omitempty"`
	CreatedBy   *User            `gorm:"foreignKey:CreatedByID;references:ID" json:"createdBy,omitempty"`
	Topics      []*ModuleOnTopic `gorm:"foreignKey:ModuleID;references:ID" json:"topics,omitempty"`
	CreatedAt   time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time        `gorm:"not null" json:"updatedAt"`
}

func (Module) TableName() string {
	return "module"
}
