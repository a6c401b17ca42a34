package types

import (
	"time"

	"github.com/google/uuid"
)

// LastSeen is keyed by (user, module) and upserted on every view, so repeated
// views refresh the timestamp instead of adding rows.
type LastSeen struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"userId"`
	ModuleID   uuid.UUID `gorm:"type:uuid;primaryKey;column:module_id" json:"moduleId"`
	Module     *Module   `gorm:"foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	LastSeenAt time.Time `gorm:"not null;index;column:last_seen_at" json:"lastSeenAt"`
}

func (LastSeen) TableName() string {
	return "last_seen"
}
