package model

import (
	"time"

	"gorm.io/datatypes"
)

// Progress is the persisted record of a student's best attempt at a
// module. Score is always derived server-side from details/ai_history and
// only ever increases across retries; the remaining columns always hold
// the latest attempt.
// swagger:model Progress
type Progress struct {
	BaseModel
	UserID      uint           `gorm:"uniqueIndex:idx_user_module;not null" json:"userId"`
	ModuleID    uint           `gorm:"uniqueIndex:idx_user_module;not null" json:"moduleId"`
	Score       int            `gorm:"default:0" json:"score"`
	Reflection  datatypes.JSON `gorm:"type:json" json:"reflection,omitempty"`
	Details     datatypes.JSON `gorm:"type:json" json:"details,omitempty"`
	AIHistory   datatypes.JSON `gorm:"type:json;column:ai_history" json:"ai_history,omitempty"`
	CompletedAt time.Time      `json:"completed_at"`
}

func (Progress) TableName() string {
	return "progress"
}

// Assignment links a teacher's module to that teacher's students:
// a student sees exactly the modules their teacher has assigned.
// swagger:model Assignment
type Assignment struct {
	BaseModel
	TeacherID  uint      `gorm:"index;not null" json:"teacherId"`
	ModuleID   uint      `gorm:"index;not null" json:"moduleId"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assignedAt"`

	Module *Module `gorm:"foreignKey:ModuleID" json:"module,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}
