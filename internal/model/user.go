package model

import "time"

const (
	RoleStudent = "student"
	RoleRep     = "rep"
	RoleAdmin   = "admin"
)

type User struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:20;default:student" json:"role"`

	Department string `gorm:"size:100" json:"department"`
	LevelID    *uint  `gorm:"index" json:"levelId"`
	Level      *Level `gorm:"foreignKey:LevelID" json:"level,omitempty"`

	IsVerified bool `gorm:"default:false" json:"isVerified"`
	IsActive   bool `gorm:"default:true" json:"isActive"`

	// Contribution counters feeding the reputation score. Updated atomically
	// alongside vote/comment writes, never read-modify-write in Go. Votes and
	// saves count what the user's notes received; comments count what the
	// user wrote.
	UpvotesReceived   int `gorm:"default:0" json:"upvotesReceived"`
	DownvotesReceived int `gorm:"default:0" json:"downvotesReceived"`
	SavesReceived     int `gorm:"default:0" json:"savesReceived"`
	CommentsMade      int `gorm:"default:0" json:"commentsMade"`
	QuizCorrect       int `gorm:"default:0" json:"quizCorrect"`
	QuizzesTaken      int `gorm:"default:0" json:"quizzesTaken"`
	NotesCreated      int `gorm:"default:0" json:"notesCreated"`
	Reputation        int `gorm:"default:0;index" json:"reputation"`

	OTPHash      string     `gorm:"size:64" json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	ResetTokenHash      string     `gorm:"size:64" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	RefreshToken string `gorm:"size:512" json:"-"`

	LastLoginAt *time.Time `json:"lastLoginAt"`
}

func (User) TableName() string {
	return "users"
}

// SavedNote records a user bookmarking a community note. One row per
// user/note pair.
type SavedNote struct {
	BaseModel
	UserID uint   `gorm:"uniqueIndex:idx_saved_user_note;not null" json:"userId"`
	NoteID string `gorm:"uniqueIndex:idx_saved_user_note;type:varchar(36);not null" json:"noteId"`
}

func (SavedNote) TableName() string {
	return "saved_notes"
}
