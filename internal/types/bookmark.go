package types

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is keyed by (user, module); a duplicate create fails on the
// primary key rather than silently updating.
type Bookmark struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"userId"`
	ModuleID  uuid.UUID `gorm:"type:uuid;primaryKey;column:module_id" json:"moduleId"`
	Module    *Module   `gorm:"foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Bookmark) TableName() string {
	return "bookmark"
}
