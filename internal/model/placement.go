package model

import "gorm.io/datatypes"

// PlacementCategory tags each placement question with the skill it
// probes. An explicit column here replaces the substring guessing the
// first frontend did.
type PlacementCategory string

const (
	PlacementVocabulary PlacementCategory = "vocabulary"
	PlacementGrammar    PlacementCategory = "grammar"
	PlacementReading    PlacementCategory = "reading"
)

// swagger:model PlacementQuestion
type PlacementQuestion struct {
	BaseModel
	Category PlacementCategory `gorm:"size:20;index;not null" json:"category"`
	// Reading questions carry their passage; other categories leave it empty.
	Text     string         `gorm:"type:text" json:"text,omitempty"`
	Question string         `gorm:"type:text;not null" json:"question"`
	Options  datatypes.JSON `gorm:"type:json" json:"options"`
	Answer   string         `gorm:"size:255;not null" json:"-"`
}

func (PlacementQuestion) TableName() string {
	return "placement_questions"
}
