package discussionController

import (
	"learnify/database"
	"learnify/middleware"
	discussionModels "learnify/models/discussion"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// voteTally is the denormalized vote state carried by a discussion or a
// reply. The invariant Votes == len(Upvoters) - len(Downvoters) holds
// after every transition.
type voteTally struct {
	Votes      int
	Upvoters   []uint
	Downvoters []uint
}

// applyVote runs one transition of the per-(voter, target) state machine
// {None, Upvoted, Downvoted}. current is the voter's existing vote type
// ("" for none); requested is the incoming vote type ("" clears any
// vote). It returns the new tally and the voter's resulting state.
// Re-submitting the current type undoes it; switching types swings the
// tally by two.
func applyVote(t voteTally, userID uint, current, requested string) (voteTally, string) {
	// Undo the existing vote first
	switch current {
	case discussionModels.VoteUp:
		t.Votes--
		t.Upvoters = removeFromSet(t.Upvoters, userID)
	case discussionModels.VoteDown:
		t.Votes++
		t.Downvoters = removeFromSet(t.Downvoters, userID)
	}

	// A repeated or empty request stays at None
	if requested == "" || requested == current {
		return t, ""
	}

	switch requested {
	case discussionModels.VoteUp:
		t.Votes++
		t.Upvoters = addToSet(t.Upvoters, userID)
	case discussionModels.VoteDown:
		t.Votes--
		t.Downvoters = addToSet(t.Downvoters, userID)
	}
	return t, requested
}

// VoteDiscussion applies the caller's vote to a discussion
func VoteDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID := c.Locals("discussionID").(int)

	reqData, ok := c.Locals("validatedVote").(*struct {
		VoteType *string `json:"voteType"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var discussion discussionModels.Discussion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	requested := ""
	if reqData.VoteType != nil {
		requested = *reqData.VoteType
	}

	tx := database.Database.Db.Begin()

	var ledger discussionModels.DiscussionVote
	current := ""
	hasLedger := false
	if err := tx.Where("user_id = ? AND discussion_id = ?", userID, discussion.ID).First(&ledger).Error; err == nil {
		current = ledger.VoteType
		hasLedger = true
	}

	tally, next := applyVote(voteTally{
		Votes:      discussion.Votes,
		Upvoters:   discussion.Upvoters,
		Downvoters: discussion.Downvoters,
	}, userID, current, requested)

	if err := syncLedger(tx, &ledger, hasLedger, next, func(v *discussionModels.DiscussionVote) {
		v.UserID = userID
		v.DiscussionID = &discussion.ID
	}); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to vote!", nil)
	}

	discussion.Votes = tally.Votes
	discussion.Upvoters = tally.Upvoters
	discussion.Downvoters = tally.Downvoters
	if err := tx.Save(&discussion).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to vote!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vote recorded!", fiber.Map{
		"votes":      discussion.Votes,
		"userVote":   nullableVote(next),
		"upvoters":   len(discussion.Upvoters),
		"downvoters": len(discussion.Downvoters),
	})
}

// VoteReply applies the caller's vote to a reply
func VoteReply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	replyID := c.Locals("replyID").(int)

	reqData, ok := c.Locals("validatedVote").(*struct {
		VoteType *string `json:"voteType"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var reply discussionModels.DiscussionReply
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", replyID, false).First(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reply not found!", nil)
	}

	requested := ""
	if reqData.VoteType != nil {
		requested = *reqData.VoteType
	}

	tx := database.Database.Db.Begin()

	var ledger discussionModels.DiscussionVote
	current := ""
	hasLedger := false
	if err := tx.Where("user_id = ? AND reply_id = ?", userID, reply.ID).First(&ledger).Error; err == nil {
		current = ledger.VoteType
		hasLedger = true
	}

	tally, next := applyVote(voteTally{
		Votes:      reply.Votes,
		Upvoters:   reply.Upvoters,
		Downvoters: reply.Downvoters,
	}, userID, current, requested)

	if err := syncLedger(tx, &ledger, hasLedger, next, func(v *discussionModels.DiscussionVote) {
		v.UserID = userID
		v.ReplyID = &reply.ID
	}); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to vote!", nil)
	}

	reply.Votes = tally.Votes
	reply.Upvoters = tally.Upvoters
	reply.Downvoters = tally.Downvoters
	if err := tx.Save(&reply).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to vote!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vote recorded!", fiber.Map{
		"votes":    reply.Votes,
		"userVote": nullableVote(next),
	})
}

// syncLedger reconciles the ledger row with the resulting vote state:
// deleted on None, created on a fresh vote, retyped on a switch.
func syncLedger(tx *gorm.DB, ledger *discussionModels.DiscussionVote, exists bool, next string, bind func(*discussionModels.DiscussionVote)) error {
	switch {
	case next == "" && exists:
		return tx.Unscoped().Delete(ledger).Error
	case next != "" && exists:
		ledger.VoteType = next
		return tx.Save(ledger).Error
	case next != "" && !exists:
		*ledger = discussionModels.DiscussionVote{VoteType: next}
		bind(ledger)
		return tx.Create(ledger).Error
	}
	return nil
}

// currentDiscussionVote returns the vote type the user holds on a
// discussion, or nil
func currentDiscussionVote(userID, discussionID uint) *string {
	var vote discussionModels.DiscussionVote
	if err := database.Database.Db.
		Where("user_id = ? AND discussion_id = ?", userID, discussionID).
		First(&vote).Error; err != nil {
		return nil
	}
	return &vote.VoteType
}

// currentReplyVote returns the vote type the user holds on a reply, or nil
func currentReplyVote(userID, replyID uint) *string {
	var vote discussionModels.DiscussionVote
	if err := database.Database.Db.
		Where("user_id = ? AND reply_id = ?", userID, replyID).
		First(&vote).Error; err != nil {
		return nil
	}
	return &vote.VoteType
}

func nullableVote(voteType string) *string {
	if voteType == "" {
		return nil
	}
	return &voteType
}

func addToSet(set []uint, v uint) []uint {
	for _, existing := range set {
		if existing == v {
			return set
		}
	}
	return append(set, v)
}

func removeFromSet(set []uint, v uint) []uint {
	result := set[:0]
	for _, existing := range set {
		if existing != v {
			result = append(result, existing)
		}
	}
	return result
}
