package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"forgehub/internal/models"
	"forgehub/internal/repository"
	"forgehub/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReviewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.DeveloperProfile{},
		&models.Project{},
		&models.Review{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func newReviewTestServer(db *gorm.DB) *Server {
	reviewRepo := repository.NewReviewRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	developerRepo := repository.NewDeveloperRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	return &Server{
		db:               db,
		reviewRepo:       reviewRepo,
		projectRepo:      projectRepo,
		developerRepo:    developerRepo,
		notificationRepo: notificationRepo,
		reviewService:    service.NewReviewService(reviewRepo, projectRepo, developerRepo, notificationRepo),
	}
}

func TestCreateReview(t *testing.T) {
	t.Parallel()
	db := setupReviewTestDB(t)
	s := newReviewTestServer(db)
	app := fiber.New()

	owner := createTestUser(t, db, "owner@e.com", models.RoleDeveloper)
	reviewer := createTestUser(t, db, "reviewer@e.com", models.RoleUser)
	project := &models.Project{Title: "Tool", Description: "d", Status: models.ProjectStatusActive, UserID: owner.ID}
	db.Create(project)

	asUser := func(u *models.User) fiber.Handler {
		return func(c *fiber.Ctx) error {
			c.Locals("userID", u.ID)
			c.Locals("userRole", u.Role)
			return s.CreateReview(c)
		}
	}
	app.Post("/as-reviewer/:id/reviews", asUser(reviewer))
	app.Post("/as-owner/:id/reviews", asUser(owner))

	post := func(path string, body map[string]any) *http.Response {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success starts pending", func(t *testing.T) {
		resp := post(fmt.Sprintf("/as-reviewer/%d/reviews", project.ID),
			map[string]any{"rating": 5, "title": "Great", "comment": "Works well"})
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		var result struct {
			Review models.Review `json:"review"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		if result.Review.Status != models.ReviewStatusPending {
			t.Errorf("expected pending, got %s", result.Review.Status)
		}
	})

	t.Run("second review conflicts", func(t *testing.T) {
		resp := post(fmt.Sprintf("/as-reviewer/%d/reviews", project.ID),
			map[string]any{"rating": 4, "title": "Again", "comment": "Twice"})
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409, got %d", resp.StatusCode)
		}
	})

	t.Run("owner cannot self-review", func(t *testing.T) {
		resp := post(fmt.Sprintf("/as-owner/%d/reviews", project.ID),
			map[string]any{"rating": 5, "title": "Mine", "comment": "So good"})
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		other := createTestUser(t, db, "other@e.com", models.RoleUser)
		app.Post("/as-other/:id/reviews", asUser(other))
		resp := post(fmt.Sprintf("/as-other/%d/reviews", project.ID),
			map[string]any{"rating": 6, "title": "Bad", "comment": "Too high"})
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestReviewModerationFlow(t *testing.T) {
	t.Parallel()
	db := setupReviewTestDB(t)
	s := newReviewTestServer(db)
	app := fiber.New()

	owner := createTestUser(t, db, "owner@e.com", models.RoleDeveloper)
	profile := &models.DeveloperProfile{UserID: owner.ID, Available: true}
	db.Create(profile)
	project := &models.Project{Title: "Tool", Description: "d", Status: models.ProjectStatusActive, UserID: owner.ID}
	db.Create(project)

	reviewerA := createTestUser(t, db, "a@e.com", models.RoleUser)
	reviewerB := createTestUser(t, db, "b@e.com", models.RoleUser)
	reviewA := &models.Review{ProjectID: project.ID, UserID: reviewerA.ID, Rating: 5, Title: "Great", Comment: "c", Status: models.ReviewStatusPending}
	reviewB := &models.Review{ProjectID: project.ID, UserID: reviewerB.ID, Rating: 3, Title: "Okay", Comment: "c", Status: models.ReviewStatusPending}
	db.Create(reviewA)
	db.Create(reviewB)

	app.Post("/reviews/:id/approve", s.ApproveReview)
	app.Post("/reviews/:id/reject", s.RejectReview)
	app.Get("/projects/:id/reviews", s.GetProjectReviews)
	app.Get("/projects/:id/reviews/distribution", s.GetReviewDistribution)

	t.Run("approve updates aggregates and notifies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/reviews/%d/approve", reviewA.ID), nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var updated models.DeveloperProfile
		db.First(&updated, profile.ID)
		if updated.ReviewCount != 1 {
			t.Errorf("expected review_count 1, got %d", updated.ReviewCount)
		}
		if updated.Rating != 5.0 {
			t.Errorf("expected rating 5.0, got %f", updated.Rating)
		}

		var notif models.Notification
		if err := db.Where("user_id = ? AND type = ?", reviewerA.ID, models.NotificationTypeReviewApproved).First(&notif).Error; err != nil {
			t.Errorf("expected approval notification: %v", err)
		}
	})

	t.Run("reject leaves aggregates and notifies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/reviews/%d/reject", reviewB.ID), nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var updated models.DeveloperProfile
		db.First(&updated, profile.ID)
		if updated.ReviewCount != 1 {
			t.Errorf("rejected review must not count, got %d", updated.ReviewCount)
		}

		var notif models.Notification
		if err := db.Where("user_id = ? AND type = ?", reviewerB.ID, models.NotificationTypeReviewRejected).First(&notif).Error; err != nil {
			t.Errorf("expected rejection notification: %v", err)
		}
	})

	t.Run("re-moderation rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/reviews/%d/approve", reviewA.ID), nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400 re-moderating, got %d", resp.StatusCode)
		}
	})

	t.Run("listing shows approved only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/projects/%d/reviews", project.ID), nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()

		var result struct {
			Reviews []models.Review `json:"reviews"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		if len(result.Reviews) != 1 {
			t.Fatalf("expected 1 visible review, got %d", len(result.Reviews))
		}
		if result.Reviews[0].ID != reviewA.ID {
			t.Errorf("expected approved review %d, got %d", reviewA.ID, result.Reviews[0].ID)
		}
	})

	t.Run("distribution has all buckets", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/projects/%d/reviews/distribution", project.ID), nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()

		var result struct {
			Distribution map[string]int64 `json:"distribution"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		if len(result.Distribution) != 5 {
			t.Fatalf("expected 5 buckets, got %d", len(result.Distribution))
		}
		if result.Distribution["5"] != 1 {
			t.Errorf("expected one 5-star review, got %d", result.Distribution["5"])
		}
		if result.Distribution["3"] != 0 {
			t.Errorf("rejected 3-star review must not count, got %d", result.Distribution["3"])
		}
	})
}
