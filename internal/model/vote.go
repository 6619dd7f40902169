package model

const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

const (
	VoteTargetNote    = "note"
	VoteTargetComment = "comment"
	VoteTargetRequest = "request"
)

// Vote is the ledger entry for one user's standing vote on one target.
// The unique index makes the one-vote-per-user invariant a database
// constraint rather than an application promise.
type Vote struct {
	BaseModel
	UserID     uint   `gorm:"uniqueIndex:idx_vote_user_target;not null" json:"userId"`
	TargetType string `gorm:"uniqueIndex:idx_vote_user_target;size:20;not null" json:"targetType"`
	TargetID   string `gorm:"uniqueIndex:idx_vote_user_target;type:varchar(36);not null" json:"targetId"`
	VoteType   string `gorm:"size:10;not null" json:"voteType"`
}

func (Vote) TableName() string {
	return "votes"
}
