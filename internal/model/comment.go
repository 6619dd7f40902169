package model

type Comment struct {
	UUIDBase
	NoteID string         `gorm:"type:varchar(36);index;not null" json:"noteId"`
	Note   *CommunityNote `gorm:"foreignKey:NoteID" json:"-"`

	AuthorID uint  `gorm:"index;not null" json:"authorId"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Body string `gorm:"type:text;not null" json:"body"`

	// Replies are one level deep: a reply's ParentID always points at a
	// top-level comment.
	ParentID *string `gorm:"type:varchar(36);index" json:"parentId"`

	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`

	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
