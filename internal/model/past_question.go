package model

type PastQuestion struct {
	UUIDBase
	CourseID string  `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	Title    string `gorm:"size:255;not null" json:"title"`
	Year     int    `gorm:"index;not null" json:"year"`
	Semester string `gorm:"size:10" json:"semester"`

	FileKey  string `gorm:"size:512;not null" json:"fileKey"`
	FileName string `gorm:"size:255" json:"fileName"`
	FileSize int64  `gorm:"default:0" json:"fileSize"`

	DownloadCount int `gorm:"default:0" json:"downloadCount"`

	UploadedByID uint  `gorm:"index" json:"uploadedById"`
	UploadedBy   *User `gorm:"foreignKey:UploadedByID" json:"uploadedBy,omitempty"`
}

func (PastQuestion) TableName() string {
	return "past_questions"
}
