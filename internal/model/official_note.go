package model

// OfficialNote is lecturer-sanctioned material uploaded by a course rep or
// admin. Unlike community notes it carries no votes or comments.
type OfficialNote struct {
	UUIDBase
	CourseID string  `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Topic       string `gorm:"size:255" json:"topic"`

	FileKey  string `gorm:"size:512;not null" json:"fileKey"`
	FileName string `gorm:"size:255" json:"fileName"`
	FileSize int64  `gorm:"default:0" json:"fileSize"`

	DownloadCount int `gorm:"default:0" json:"downloadCount"`

	UploadedByID uint  `gorm:"index" json:"uploadedById"`
	UploadedBy   *User `gorm:"foreignKey:UploadedByID" json:"uploadedBy,omitempty"`
}

func (OfficialNote) TableName() string {
	return "official_notes"
}
