package discussion

import "gorm.io/gorm"

// Vote types
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// DiscussionVote is the vote ledger row: one voter, one target, one
// direction. A row targets either a discussion or a reply, never both;
// the NULLable columns make the unique indexes sparse.
type DiscussionVote struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_vote_user_discussion;uniqueIndex:idx_vote_user_reply"`
	DiscussionID *uint  `json:"discussion_id" gorm:"uniqueIndex:idx_vote_user_discussion"`
	ReplyID      *uint  `json:"reply_id" gorm:"uniqueIndex:idx_vote_user_reply"`
	VoteType     string `json:"vote_type" gorm:"not null"` // upvote, downvote
}
