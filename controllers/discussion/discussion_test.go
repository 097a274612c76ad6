package discussionController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"learnify/config"
	"learnify/database"
	"learnify/middleware"
	"learnify/models"
	discussionModels "learnify/models/discussion"
	discussionRoutes "learnify/routers/discussionRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "5000",
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	discussionRoutes.SetupDiscussionRoutes(app)
	return app
}

var userSeq int

func createUser(t *testing.T, name string) (models.User, string) {
	t.Helper()

	userSeq++
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@test.local", strings.ToLower(name), userSeq),
		Password: "not-a-real-hash",
		Role:     models.RoleStudent,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createDiscussion(t *testing.T, authorID uint) discussionModels.Discussion {
	t.Helper()

	discussion := discussionModels.Discussion{
		Title:    "How do goroutines work?",
		Content:  "I keep confusing goroutines with OS threads.",
		AuthorID: authorID,
		Category: "programming",
	}
	require.NoError(t, database.Database.Db.Create(&discussion).Error)
	return discussion
}

func createReply(t *testing.T, discussionID, authorID uint, content string) discussionModels.DiscussionReply {
	t.Helper()

	reply := discussionModels.DiscussionReply{
		DiscussionID: discussionID,
		AuthorID:     authorID,
		Content:      content,
	}
	require.NoError(t, database.Database.Db.Create(&reply).Error)
	return reply
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

type voteResult struct {
	Votes    int     `json:"votes"`
	UserVote *string `json:"userVote"`
}

func vote(t *testing.T, app *fiber.App, path, token string, voteType interface{}) voteResult {
	t.Helper()

	code, env := doRequest(t, app, "PUT", path, token, map[string]interface{}{"voteType": voteType})
	require.Equal(t, 200, code, env.Message)

	var result voteResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	return result
}

func TestVoteDiscussionLifecycle(t *testing.T) {
	app := setupApp(t)
	author, _ := createUser(t, "Author")
	_, voterToken := createUser(t, "Voter")
	discussion := createDiscussion(t, author.ID)

	path := fmt.Sprintf("/api/discussions/%d/vote", discussion.ID)

	// None -> Upvoted
	result := vote(t, app, path, voterToken, "upvote")
	assert.Equal(t, 1, result.Votes)
	require.NotNil(t, result.UserVote)
	assert.Equal(t, "upvote", *result.UserVote)

	// Upvoted -> None (toggle off)
	result = vote(t, app, path, voterToken, "upvote")
	assert.Equal(t, 0, result.Votes)
	assert.Nil(t, result.UserVote)

	// None -> Downvoted
	result = vote(t, app, path, voterToken, "downvote")
	assert.Equal(t, -1, result.Votes)
	require.NotNil(t, result.UserVote)
	assert.Equal(t, "downvote", *result.UserVote)

	// Downvoted -> Upvoted swings by two
	result = vote(t, app, path, voterToken, "upvote")
	assert.Equal(t, 1, result.Votes)

	// null clears
	result = vote(t, app, path, voterToken, nil)
	assert.Equal(t, 0, result.Votes)
	assert.Nil(t, result.UserVote)

	// The ledger row is gone once the vote is cleared
	var count int64
	database.Database.Db.Model(&discussionModels.DiscussionVote{}).
		Where("discussion_id = ?", discussion.ID).Count(&count)
	assert.Zero(t, count)
}

func TestVoteDiscussionTallyMatchesVoterSets(t *testing.T) {
	app := setupApp(t)
	author, _ := createUser(t, "Author")
	_, tokenA := createUser(t, "Alice")
	_, tokenB := createUser(t, "Bob")
	_, tokenC := createUser(t, "Carol")
	discussion := createDiscussion(t, author.ID)

	path := fmt.Sprintf("/api/discussions/%d/vote", discussion.ID)
	vote(t, app, path, tokenA, "upvote")
	vote(t, app, path, tokenB, "upvote")
	result := vote(t, app, path, tokenC, "downvote")
	assert.Equal(t, 1, result.Votes)

	var stored discussionModels.Discussion
	require.NoError(t, database.Database.Db.First(&stored, discussion.ID).Error)
	assert.Equal(t, len(stored.Upvoters)-len(stored.Downvoters), stored.Votes)
	assert.Len(t, stored.Upvoters, 2)
	assert.Len(t, stored.Downvoters, 1)
}

func TestVoteDiscussionRejectsUnknownType(t *testing.T) {
	app := setupApp(t)
	author, _ := createUser(t, "Author")
	_, voterToken := createUser(t, "Voter")
	discussion := createDiscussion(t, author.ID)

	code, _ := doRequest(t, app, "PUT", fmt.Sprintf("/api/discussions/%d/vote", discussion.ID),
		voterToken, map[string]interface{}{"voteType": "sideways"})
	assert.Equal(t, 422, code)
}

func TestVoteReplyLifecycle(t *testing.T) {
	app := setupApp(t)
	author, _ := createUser(t, "Author")
	_, voterToken := createUser(t, "Voter")
	discussion := createDiscussion(t, author.ID)
	reply := createReply(t, discussion.ID, author.ID, "They are multiplexed onto threads.")

	path := fmt.Sprintf("/api/discussions/%d/replies/%d/vote", discussion.ID, reply.ID)

	result := vote(t, app, path, voterToken, "upvote")
	assert.Equal(t, 1, result.Votes)

	result = vote(t, app, path, voterToken, "downvote")
	assert.Equal(t, -1, result.Votes)

	result = vote(t, app, path, voterToken, "downvote")
	assert.Equal(t, 0, result.Votes)
	assert.Nil(t, result.UserVote)
}

func TestCreateReplyRecomputesAnswerCount(t *testing.T) {
	app := setupApp(t)
	author, _ := createUser(t, "Author")
	_, replierToken := createUser(t, "Replier")
	discussion := createDiscussion(t, author.ID)

	for i := 0; i < 2; i++ {
		code, _ := doRequest(t, app, "POST", fmt.Sprintf("/api/discussions/%d/replies", discussion.ID),
			replierToken, map[string]interface{}{"content": fmt.Sprintf("Answer %d", i+1)})
		require.Equal(t, 201, code)
	}

	var stored discussionModels.Discussion
	require.NoError(t, database.Database.Db.First(&stored, discussion.ID).Error)
	assert.Equal(t, 2, stored.AnswerCount)
}

func TestCreateReplyRejectsEmptyContent(t *testing.T) {
	app := setupApp(t)
	author, token := createUser(t, "Author")
	discussion := createDiscussion(t, author.ID)

	code, _ := doRequest(t, app, "POST", fmt.Sprintf("/api/discussions/%d/replies", discussion.ID),
		token, map[string]interface{}{"content": "   "})
	assert.Equal(t, 422, code)
}

func TestAcceptAnswerClearsPreviousAcceptance(t *testing.T) {
	app := setupApp(t)
	author, authorToken := createUser(t, "Author")
	replier, _ := createUser(t, "Replier")
	discussion := createDiscussion(t, author.ID)
	first := createReply(t, discussion.ID, replier.ID, "First answer")
	second := createReply(t, discussion.ID, replier.ID, "Second answer")

	accept := func(replyID uint) (int, envelope) {
		return doRequest(t, app, "PUT",
			fmt.Sprintf("/api/discussions/%d/replies/%d/accept", discussion.ID, replyID), authorToken, nil)
	}

	code, _ := accept(first.ID)
	require.Equal(t, 200, code)

	code, _ = accept(second.ID)
	require.Equal(t, 200, code)

	var accepted []discussionModels.DiscussionReply
	require.NoError(t, database.Database.Db.
		Where("discussion_id = ? AND is_accepted_answer = ?", discussion.ID, true).
		Find(&accepted).Error)
	require.Len(t, accepted, 1)
	assert.Equal(t, second.ID, accepted[0].ID)

	var stored discussionModels.Discussion
	require.NoError(t, database.Database.Db.First(&stored, discussion.ID).Error)
	assert.True(t, stored.IsSolved)
}

func TestAcceptAnswerAuthorOnly(t *testing.T) {
	app := setupApp(t)
	author, _ := createUser(t, "Author")
	replier, replierToken := createUser(t, "Replier")
	discussion := createDiscussion(t, author.ID)
	reply := createReply(t, discussion.ID, replier.ID, "My own answer")

	code, env := doRequest(t, app, "PUT",
		fmt.Sprintf("/api/discussions/%d/replies/%d/accept", discussion.ID, reply.ID), replierToken, nil)
	assert.Equal(t, 403, code)
	assert.Equal(t, "Only the author can accept an answer!", env.Message)
}

func TestGetDiscussionCountsViewsAndDecoratesVote(t *testing.T) {
	app := setupApp(t)
	author, _ := createUser(t, "Author")
	_, voterToken := createUser(t, "Voter")
	discussion := createDiscussion(t, author.ID)

	vote(t, app, fmt.Sprintf("/api/discussions/%d/vote", discussion.ID), voterToken, "upvote")

	path := fmt.Sprintf("/api/discussions/%d", discussion.ID)

	// Anonymous read: view counted, no vote decoration
	code, env := doRequest(t, app, "GET", path, "", nil)
	require.Equal(t, 200, code)

	var row struct {
		Views    int     `json:"views"`
		UserVote *string `json:"userVote"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &row))
	assert.Equal(t, 1, row.Views)
	assert.Nil(t, row.UserVote)

	// Authenticated read sees its own vote
	code, env = doRequest(t, app, "GET", path, voterToken, nil)
	require.Equal(t, 200, code)
	require.NoError(t, json.Unmarshal(env.Data, &row))
	assert.Equal(t, 2, row.Views)
	require.NotNil(t, row.UserVote)
	assert.Equal(t, "upvote", *row.UserVote)
}

func TestCreateDiscussionNormalizesTags(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "Author")

	code, env := doRequest(t, app, "POST", "/api/discussions/", token, map[string]interface{}{
		"title":   "Which database should I pick?",
		"content": "Postgres or MySQL for a small project?",
		"tags":    []string{"Database", "database", " SQL "},
	})
	require.Equal(t, 201, code, env.Message)

	var created discussionModels.Discussion
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, []string{"database", "sql"}, []string(created.Tags))
	assert.Equal(t, "general", created.Category)
}
