package discussionController

import (
	"strings"

	"learnify/database"
	"learnify/middleware"
	discussionModels "learnify/models/discussion"

	"github.com/gofiber/fiber/v2"
)

// discussionWithVote decorates a discussion with the caller's own vote
type discussionWithVote struct {
	discussionModels.Discussion
	UserVote *string `json:"userVote"`
}

// GetDiscussions lists discussions with the requested sort. Anonymous
// callers get userVote = null on every row.
func GetDiscussions(c *fiber.Ctx) error {
	sort := c.Query("sort", "latest")
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}

	var order string
	switch sort {
	case "trending":
		order = "votes desc, views desc, created_at desc"
	case "popular":
		order = "votes desc, created_at desc"
	case "unanswered":
		order = "answer_count asc, created_at desc"
	default:
		order = "created_at desc"
	}

	var discussions []discussionModels.Discussion
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order(order).
		Limit(limit).
		Find(&discussions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch discussions!", nil)
	}

	userID, authenticated := c.Locals("userId").(uint)

	result := make([]discussionWithVote, 0, len(discussions))
	for _, d := range discussions {
		row := discussionWithVote{Discussion: d}
		if authenticated {
			row.UserVote = currentDiscussionVote(userID, d.ID)
		}
		result = append(result, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussions fetched successfully!", result)
}

// GetDiscussion returns one discussion and counts the view
func GetDiscussion(c *fiber.Ctx) error {
	discussionID := c.Locals("discussionID").(int)

	var discussion discussionModels.Discussion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	discussion.Views++
	database.Database.Db.Model(&discussion).Update("views", discussion.Views)

	row := discussionWithVote{Discussion: discussion}
	if userID, ok := c.Locals("userId").(uint); ok {
		row.UserVote = currentDiscussionVote(userID, discussion.ID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion fetched successfully!", row)
}

// CreateDiscussion creates a question post. Tags are lowercased and
// deduplicated before the write.
func CreateDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedDiscussion").(*struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	discussion := discussionModels.Discussion{
		Title:    reqData.Title,
		Content:  reqData.Content,
		AuthorID: userID,
		Category: reqData.Category,
		Tags:     normalizeTags(reqData.Tags),
	}
	if discussion.Category == "" {
		discussion.Category = "general"
	}

	if err := database.Database.Db.Create(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Discussion created successfully!", discussion)
}

// normalizeTags lowercases, trims and deduplicates tags
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}
