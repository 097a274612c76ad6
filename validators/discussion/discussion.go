package discussionValidator

import (
	"strconv"
	"strings"

	"learnify/middleware"
	discussionModels "learnify/models/discussion"

	"github.com/gofiber/fiber/v2"
)

func validCategory(category string) bool {
	if category == "" {
		return true
	}
	for _, c := range discussionModels.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// DiscussionID validator middleware
func DiscussionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid discussion id!", nil)
		}
		c.Locals("discussionID", id)
		return c.Next()
	}
}

// ReplyID validator middleware
func ReplyID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("replyId"))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid reply id!", nil)
		}
		c.Locals("replyID", id)
		return c.Next()
	}
}

// CreateDiscussion validator middleware
func CreateDiscussion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title    string   `json:"title"`
			Content  string   `json:"content"`
			Category string   `json:"category"`
			Tags     []string `json:"tags"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 5 {
			errors["title"] = "Title must be at least 5 characters long!"
		}
		if len(reqData.Title) > 200 {
			errors["title"] = "Title cannot exceed 200 characters!"
		}
		if len(strings.TrimSpace(reqData.Content)) < 10 {
			errors["content"] = "Content must be at least 10 characters long!"
		}
		if !validCategory(reqData.Category) {
			errors["category"] = "Invalid category!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDiscussion", reqData)
		return c.Next()
	}
}

// CreateReply validator middleware
func CreateReply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content     string `json:"content"`
			ParentReply *uint  `json:"parentReply"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Content) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"content": "Reply content cannot be empty!",
			})
		}

		c.Locals("validatedReply", reqData)
		return c.Next()
	}
}

// Vote validator middleware. A null voteType clears the caller's vote,
// anything else must be upvote or downvote.
func Vote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			VoteType *string `json:"voteType"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.VoteType != nil &&
			*reqData.VoteType != discussionModels.VoteUp &&
			*reqData.VoteType != discussionModels.VoteDown {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"voteType": "Vote type must be upvote, downvote or null!",
			})
		}

		c.Locals("validatedVote", reqData)
		return c.Next()
	}
}
