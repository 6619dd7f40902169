package model

const (
	SemesterFirst  = "first"
	SemesterSecond = "second"
)

type Course struct {
	UUIDBase
	Code        string `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Semester    string `gorm:"size:10;not null" json:"semester"`
	Units       int    `gorm:"default:0" json:"units"`

	LevelID uint   `gorm:"index;not null" json:"levelId"`
	Level   *Level `gorm:"foreignKey:LevelID" json:"level,omitempty"`

	Department string `gorm:"size:100;index" json:"department"`

	// Material counters, bumped atomically when content is added or removed.
	PastQuestionCount  int `gorm:"default:0" json:"pastQuestionCount"`
	OfficialNoteCount  int `gorm:"default:0" json:"officialNoteCount"`
	CommunityNoteCount int `gorm:"default:0" json:"communityNoteCount"`
	QuizCount          int `gorm:"default:0" json:"quizCount"`

	CreatedByID uint  `gorm:"index" json:"createdById"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
