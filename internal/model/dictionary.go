package model

// DictionaryEntry backs the tap-to-translate reading view. Words are
// stored lowercase.
// swagger:model DictionaryEntry
type DictionaryEntry struct {
	Word        string `gorm:"primaryKey;size:100" json:"word"`
	Translation string `gorm:"size:255;not null" json:"translation"`
	AudioURL    string `gorm:"size:255" json:"audioUrl,omitempty"`
}

func (DictionaryEntry) TableName() string {
	return "dictionary"
}
