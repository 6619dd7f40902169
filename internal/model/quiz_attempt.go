package model

import (
	"encoding/json"
	"time"
)

// AttemptAnswer is one graded answer inside an attempt, stored as part of the
// attempt's JSON answers column.
type AttemptAnswer struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
	CorrectIndex  int    `json:"correctIndex"`
	Correct       bool   `json:"correct"`
	PointsEarned  int    `json:"pointsEarned"`
}

type QuizAttempt struct {
	UUIDBase
	QuizID string `gorm:"type:varchar(36);index;not null" json:"quizId"`
	Quiz   *Quiz  `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`

	UserID uint  `gorm:"index;not null" json:"userId"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	AttemptNumber int `gorm:"not null" json:"attemptNumber"`

	Answers json.RawMessage `gorm:"type:json" json:"answers"`

	// Score is the percentage 0-100; PointsEarned/PointsTotal are the raw
	// tallies it was derived from. Passed compares Score to the quiz's pass
	// mark at submission time.
	Score        int  `gorm:"not null" json:"score"`
	PointsEarned int  `gorm:"default:0" json:"pointsEarned"`
	PointsTotal  int  `gorm:"default:0" json:"pointsTotal"`
	CorrectCount int  `gorm:"default:0" json:"correctCount"`
	Passed       bool `gorm:"default:false" json:"passed"`

	StartedAt        time.Time `json:"startedAt"`
	TimeTakenSeconds int       `gorm:"default:0" json:"timeTakenSeconds"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) AnswerList() ([]AttemptAnswer, error) {
	var answers []AttemptAnswer
	if len(a.Answers) == 0 {
		return answers, nil
	}
	if err := json.Unmarshal(a.Answers, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}
