package discussionController

import (
	"learnify/database"
	"learnify/middleware"
	"learnify/models"
	discussionModels "learnify/models/discussion"

	"github.com/gofiber/fiber/v2"
)

// replyWithVote decorates a reply with its author summary, the caller's
// vote and one level of nested replies
type replyWithVote struct {
	discussionModels.DiscussionReply
	Author   fiber.Map                          `json:"author"`
	UserVote *string                            `json:"userVote"`
	Replies  []discussionModels.DiscussionReply `json:"replies,omitempty"`
}

// authorSummary loads the public fields of a reply/discussion author
func authorSummary(userID uint) fiber.Map {
	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return fiber.Map{"id": userID}
	}
	return fiber.Map{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"avatar": user.Avatar,
	}
}

// GetReplies returns a discussion's top-level replies (accepted answer
// first, then by votes) with one rendered level of nesting
func GetReplies(c *fiber.Ctx) error {
	discussionID := c.Locals("discussionID").(int)

	var replies []discussionModels.DiscussionReply
	if err := database.Database.Db.
		Where("discussion_id = ? AND parent_reply_id IS NULL AND is_deleted = ?", discussionID, false).
		Order("is_accepted_answer desc, votes desc, created_at asc").
		Find(&replies).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch replies!", nil)
	}

	userID, authenticated := c.Locals("userId").(uint)

	result := make([]replyWithVote, 0, len(replies))
	for _, reply := range replies {
		row := replyWithVote{
			DiscussionReply: reply,
			Author:          authorSummary(reply.AuthorID),
		}
		if authenticated {
			row.UserVote = currentReplyVote(userID, reply.ID)
		}

		var nested []discussionModels.DiscussionReply
		database.Database.Db.
			Where("parent_reply_id = ? AND is_deleted = ?", reply.ID, false).
			Order("created_at asc").
			Find(&nested)
		row.Replies = nested

		result = append(result, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Replies fetched successfully!", result)
}

// CreateReply adds a reply to a discussion and recomputes its answer count
func CreateReply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID := c.Locals("discussionID").(int)

	reqData, ok := c.Locals("validatedReply").(*struct {
		Content     string `json:"content"`
		ParentReply *uint  `json:"parentReply"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var discussion discussionModels.Discussion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	reply := discussionModels.DiscussionReply{
		DiscussionID:  discussion.ID,
		AuthorID:      userID,
		Content:       reqData.Content,
		ParentReplyID: reqData.ParentReply,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&reply).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reply!", nil)
	}

	// Recompute the denormalized counter from the reply count
	var count int64
	tx.Model(&discussionModels.DiscussionReply{}).
		Where("discussion_id = ? AND is_deleted = ?", discussion.ID, false).
		Count(&count)
	if err := tx.Model(&discussion).Update("answer_count", count).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reply!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply added successfully!", replyWithVote{
		DiscussionReply: reply,
		Author:          authorSummary(userID),
	})
}

// AcceptAnswer designates a reply as the discussion's accepted answer.
// Only the discussion's author may accept; every other reply's flag is
// cleared first, so at most one accepted answer exists at any time and
// accepting a second reply silently un-accepts the first.
func AcceptAnswer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID := c.Locals("discussionID").(int)
	replyID := c.Locals("replyID").(int)

	var discussion discussionModels.Discussion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	if discussion.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can accept an answer!", nil)
	}

	var reply discussionModels.DiscussionReply
	if err := database.Database.Db.
		Where("id = ? AND discussion_id = ? AND is_deleted = ?", replyID, discussionID, false).
		First(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reply not found!", nil)
	}

	tx := database.Database.Db.Begin()

	// Clear-then-set keeps the at-most-one invariant
	if err := tx.Model(&discussionModels.DiscussionReply{}).
		Where("discussion_id = ?", discussion.ID).
		Update("is_accepted_answer", false).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to accept answer!", nil)
	}

	reply.IsAcceptedAnswer = true
	if err := tx.Save(&reply).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to accept answer!", nil)
	}

	discussion.IsSolved = true
	if err := tx.Save(&discussion).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to accept answer!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer accepted!", fiber.Map{
		"isAccepted": true,
	})
}
