package types

import (
	"github.com/google/uuid"
)

// ModuleOnTopic is the module<->topic join row. It has no identity of its
// own; the full set for a module is replaced wholesale on module update.
type ModuleOnTopic struct {
	ModuleID uuid.UUID `gorm:"type:uuid;primaryKey;column:module_id" json:"moduleId"`
	TopicID  uuid.UUID `gorm:"type:uuid;primaryKey;column:topic_id" json:"topicId"`
	Module   *Module   `gorm:"foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Topic    *Topic    `gorm:"foreignKey:TopicID;references:ID" json:"topic,omitempty"`
}

func (ModuleOnTopic) TableName() string {
	return "module_on_topic"
}
