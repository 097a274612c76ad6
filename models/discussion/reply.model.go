package discussion

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DiscussionReply is an answer to a discussion. One rendered level of
// nesting via ParentReplyID. At most one reply per discussion carries
// IsAcceptedAnswer; the accept handler clears all others before setting it.
type DiscussionReply struct {
	gorm.Model
	DiscussionID     uint                      `json:"discussion_id" gorm:"index;not null"`
	AuthorID         uint                      `json:"author_id" gorm:"index;not null"`
	Content          string                    `json:"content" gorm:"type:text"`
	ParentReplyID    *uint                     `json:"parent_reply_id" gorm:"index"`
	IsAcceptedAnswer bool                      `json:"is_accepted_answer" gorm:"default:false"`
	Votes            int                       `json:"votes" gorm:"default:0"`
	Upvoters         datatypes.JSONSlice[uint] `json:"upvoters"`
	Downvoters       datatypes.JSONSlice[uint] `json:"downvoters"`
	IsDeleted        bool                      `gorm:"default:false"`
}
