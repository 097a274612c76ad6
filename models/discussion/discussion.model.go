package discussion

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Discussion categories
var Categories = []string{"general", "programming", "career", "official", "help", "showcase"}

// Discussion is a forum question/post. Votes is a signed tally kept in
// sync with the Upvoters/Downvoters sets by the vote handlers; it always
// equals len(Upvoters) - len(Downvoters).
type Discussion struct {
	gorm.Model
	Title       string                    `json:"title" gorm:"size:200"`
	Content     string                    `json:"content" gorm:"type:text"`
	AuthorID    uint                      `json:"author_id" gorm:"index;not null"`
	Category    string                    `json:"category" gorm:"default:'general'"`
	Tags        datatypes.JSONSlice[string] `json:"tags"` // lowercased, deduplicated
	IsOfficial  bool                      `json:"is_official" gorm:"default:false"`
	IsPinned    bool                      `json:"is_pinned" gorm:"default:false"`
	IsSolved    bool                      `json:"is_solved" gorm:"default:false"`
	Views       int                       `json:"views" gorm:"default:0"`
	Votes       int                       `json:"votes" gorm:"default:0"`
	Upvoters    datatypes.JSONSlice[uint] `json:"upvoters"`
	Downvoters  datatypes.JSONSlice[uint] `json:"downvoters"`
	AnswerCount int                       `json:"answer_count" gorm:"default:0"` // recomputed from reply count
	IsDeleted   bool                      `gorm:"default:false"`
}
