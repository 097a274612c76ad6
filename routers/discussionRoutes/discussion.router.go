package discussionRoutes

import (
	discussionController "learnify/controllers/discussion"
	"learnify/middleware"
	discussionValidator "learnify/validators/discussion"

	"github.com/gofiber/fiber/v2"
)

// SetupDiscussionRoutes sets up the Q&A forum routes
func SetupDiscussionRoutes(app *fiber.App) {
	discussionGroup := app.Group("/api/discussions")

	// Reads work anonymously; a valid token adds the caller's vote state
	discussionGroup.Get("/", middleware.OptionalJWTMiddleware, discussionController.GetDiscussions)
	discussionGroup.Get("/:id", middleware.OptionalJWTMiddleware, discussionValidator.DiscussionID(), discussionController.GetDiscussion)
	discussionGroup.Get("/:id/replies", middleware.OptionalJWTMiddleware, discussionValidator.DiscussionID(), discussionController.GetReplies)

	discussionGroup.Post("/", middleware.JWTMiddleware, discussionValidator.CreateDiscussion(), discussionController.CreateDiscussion)
	discussionGroup.Post("/:id/replies", middleware.JWTMiddleware, discussionValidator.DiscussionID(), discussionValidator.CreateReply(), discussionController.CreateReply)

	// Voting and accepted answers
	discussionGroup.Put("/:id/vote", middleware.JWTMiddleware, discussionValidator.DiscussionID(), discussionValidator.Vote(), discussionController.VoteDiscussion)
	discussionGroup.Put("/:id/replies/:replyId/vote", middleware.JWTMiddleware, discussionValidator.DiscussionID(), discussionValidator.ReplyID(), discussionValidator.Vote(), discussionController.VoteReply)
	discussionGroup.Put("/:id/replies/:replyId/accept", middleware.JWTMiddleware, discussionValidator.DiscussionID(), discussionValidator.ReplyID(), discussionController.AcceptAnswer)
}
