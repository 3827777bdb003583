package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

// CEFRLevel is the six-band language proficiency scale. Placement and
// module tagging only use A1..B2; C1/C2 exist for manual assignment.
type CEFRLevel string

const (
	A1 CEFRLevel = "A1"
	A2 CEFRLevel = "A2"
	B1 CEFRLevel = "B1"
	B2 CEFRLevel = "B2"
	C1 CEFRLevel = "C1"
	C2 CEFRLevel = "C2"
)

// swagger:model User
type User struct {
	BaseModel
	Username string    `gorm:"size:100;uniqueIndex" json:"username"`
	Phone    string    `gorm:"size:20;uniqueIndex;default:null" json:"phone,omitempty"`
	FullName string    `gorm:"size:150" json:"fullName"`
	Password string    `gorm:"size:100;not null" json:"-"`
	Role     UserRole  `gorm:"type:enum('student','teacher');default:'student'" json:"role"`
	Level    CEFRLevel `gorm:"size:2;default:'A1'" json:"level"`
	// Students are linked to the teacher whose assignments they see.
	TeacherID uint `gorm:"index" json:"teacherId,omitempty"`
}

func (User) TableName() string {
	return "users"
}
