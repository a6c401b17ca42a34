package types

import (
	"github.com/google/uuid"
)

type Topic struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string           `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string           `gorm:"column:description" json:"description,omitempty"`
	Modules     []*ModuleOnTopic `gorm:"foreignKey:TopicID;references:ID" json:"modules,omitempty"`
}

func (Topic) TableName() string {
	return "topic"
}
