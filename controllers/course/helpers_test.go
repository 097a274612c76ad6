package controllers_test

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
	courseModels "learnify/models/course"
	courseRoutes "learnify/routers/courseRoutes"
	materialRoutes "learnify/routers/materialRoutes"
	moduleRoutes "learnify/routers/moduleRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupApp wires the course and module routes against a fresh in-memory
// database. Each test gets its own database, named after the test.
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
	courseRoutes.SetupCourseRoutes(app)
	moduleRoutes.SetupModuleRoutes(app)
	materialRoutes.SetupMaterialRoutes(app)
	return app
}

// readerToken mints a student token for authenticated reads that do not
// care which user is asking
func readerToken(t *testing.T) string {
	t.Helper()

	token, err := middleware.GenerateJWT(1, "Reader", models.RoleStudent, "reader@test.local")
	require.NoError(t, err)
	return token
}

func createUser(t *testing.T, role string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("user-%s-%d@test.local", role, testUserSeq()),
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

var userSeq int

func testUserSeq() int {
	userSeq++
	return userSeq
}

func createCourse(t *testing.T, title string) courseModels.Course {
	t.Helper()

	course := courseModels.Course{Title: title, Subject: "Matematika"}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
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

// dbFirst loads a record by id from the test database
func dbFirst(dest interface{}, id uint) error {
	return database.Database.Db.Where("id = ?", id).First(dest).Error
}

// moduleOrders fetches a course's modules and returns their titles in
// stored order alongside the order values themselves
func moduleOrders(t *testing.T, app *fiber.App, courseID uint) ([]string, []int) {
	t.Helper()

	code, env := doRequest(t, app, "GET", fmt.Sprintf("/api/courses/%d/modules", courseID), readerToken(t), nil)
	require.Equal(t, 200, code)

	var modules []courseModels.Module
	require.NoError(t, json.Unmarshal(env.Data, &modules))

	titles := make([]string, 0, len(modules))
	orders := make([]int, 0, len(modules))
	for _, m := range modules {
		titles = append(titles, m.Title)
		orders = append(orders, m.OrderIndex)
	}
	return titles, orders
}
