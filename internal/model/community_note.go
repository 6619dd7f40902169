package model

import "time"

// ReportThreshold is the report count at which a note hides itself pending
// moderator review.
const ReportThreshold = 5

// CommunityNote is student-contributed material. Score and the counters it
// derives from are recomputed inside the same transaction as the vote,
// save or comment write that changed them.
type CommunityNote struct {
	UUIDBase
	CourseID string  `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Topic       string `gorm:"size:255" json:"topic"`

	FileKey  string `gorm:"size:512;not null" json:"fileKey"`
	FileName string `gorm:"size:255" json:"fileName"`
	FileSize int64  `gorm:"default:0" json:"fileSize"`

	AuthorID uint  `gorm:"index;not null" json:"authorId"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	IsPinned bool `gorm:"default:false" json:"isPinned"`
	// Hidden notes stay in storage but drop out of listings. Set automatically
	// once ReportCount reaches the report threshold, cleared by moderators.
	IsHidden    bool `gorm:"default:false" json:"isHidden"`
	ReportCount int  `gorm:"default:0" json:"reportCount"`

	EditedAt *time.Time `json:"editedAt,omitempty"`

	Upvotes      int `gorm:"default:0" json:"upvotes"`
	Downvotes    int `gorm:"default:0" json:"downvotes"`
	SaveCount    int `gorm:"default:0" json:"saveCount"`
	CommentCount int `gorm:"default:0" json:"commentCount"`
	Score        int `gorm:"default:0;index" json:"score"`

	ViewCount     int `gorm:"default:0" json:"viewCount"`
	DownloadCount int `gorm:"default:0" json:"downloadCount"`
}

func (CommunityNote) TableName() string {
	return "community_notes"
}
