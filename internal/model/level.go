package model

// Level is an academic level (100L through 500L). The standard set is
// seeded at startup; admins can add institution-specific ones.
type Level struct {
	BaseModel
	Name        string `gorm:"size:20;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	CourseCount int    `gorm:"default:0" json:"courseCount"`
}

func (Level) TableName() string {
	return "levels"
}
