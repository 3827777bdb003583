package model

import "gorm.io/datatypes"

type ModuleType string

const (
	Grammar    ModuleType = "grammar"
	Vocabulary ModuleType = "vocabulary"
	Reading    ModuleType = "reading"
	Writing    ModuleType = "writing"
)

// Module is one lesson unit: theory plus exercises plus optional AI task
// and reflection prompts. Content stays a JSON column; handlers decode it
// through ParseModuleContent before anything downstream touches it.
// swagger:model Module
type Module struct {
	BaseModel
	Level       CEFRLevel      `gorm:"size:2;index" json:"level"`
	Type        ModuleType     `gorm:"type:enum('grammar','vocabulary','reading','writing')" json:"type"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Content     datatypes.JSON `gorm:"type:json" json:"content"`
	CreatorID   uint           `gorm:"index" json:"creatorId"`

	Exercises []Exercise `gorm:"foreignKey:ModuleID" json:"exercises,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

type ExerciseType string

const (
	MultipleChoice ExerciseType = "multiple-choice"
	TrueFalse      ExerciseType = "true-false"
	FillGap        ExerciseType = "fill-gap"
	Matching       ExerciseType = "matching"
	TextInput      ExerciseType = "text-input"
)

// swagger:model Exercise
type Exercise struct {
	BaseModel
	ModuleID      uint           `gorm:"index;not null" json:"moduleId"`
	Type          ExerciseType   `gorm:"size:20;not null" json:"type"`
	Question      string         `gorm:"type:text" json:"question"`
	Options       datatypes.JSON `gorm:"type:json" json:"options"`
	CorrectAnswer string         `gorm:"type:text" json:"correct_answer"`
	Explanation   string         `gorm:"type:text" json:"explanation"`
}

func (Exercise) TableName() string {
	return "exercises"
}
