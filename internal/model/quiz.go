package model

import "encoding/json"

const (
	QuizStatusDraft     = "draft"
	QuizStatusPublished = "published"
	QuizStatusArchived  = "archived"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Quiz struct {
	UUIDBase
	CourseID string  `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Topic       string `gorm:"size:255" json:"topic"`

	Status     string `gorm:"size:20;default:draft;index" json:"status"`
	Difficulty string `gorm:"size:10;default:medium;index" json:"difficulty"`

	// TimeLimit is in minutes; zero means untimed. MaxAttempts zero means
	// unlimited. PassMark is the percentage needed to pass.
	TimeLimit   int `gorm:"default:0" json:"timeLimit"`
	MaxAttempts int `gorm:"default:0" json:"maxAttempts"`
	PassMark    int `gorm:"default:50" json:"passMark"`

	// AllowReview controls whether students may see their graded answers
	// (with the answer key) after submitting.
	AllowReview bool `gorm:"default:true" json:"allowReview"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`

	// Aggregate stats over graded attempts, recomputed in the submit
	// transaction. AverageScore and PassRate are rounded percentages.
	AttemptCount int `gorm:"default:0" json:"attemptCount"`
	AverageScore int `gorm:"default:0" json:"averageScore"`
	HighestScore int `gorm:"default:0" json:"highestScore"`
	LowestScore  int `gorm:"default:0" json:"lowestScore"`
	PassRate     int `gorm:"default:0" json:"passRate"`

	CreatedByID uint  `gorm:"index" json:"createdById"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	UUIDBase
	QuizID string `gorm:"type:varchar(36);index;not null" json:"quizId"`

	Text string `gorm:"type:text;not null" json:"text"`

	// Options is a JSON array of option strings. CorrectIndex points into it
	// and is stripped from student-facing payloads by the service layer.
	Options      json.RawMessage `gorm:"type:json" json:"options"`
	CorrectIndex int             `gorm:"not null" json:"correctIndex,omitempty"`
	Explanation  string          `gorm:"type:text" json:"explanation,omitempty"`
	Points       int             `gorm:"default:1" json:"points"`

	Position int `gorm:"default:0" json:"position"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// OptionList decodes the raw options column.
func (q *QuizQuestion) OptionList() ([]string, error) {
	var opts []string
	if len(q.Options) == 0 {
		return opts, nil
	}
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}
