package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"forgehub/internal/models"
	"forgehub/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBlogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.BlogPost{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func TestSlugify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  everywhere  ", "spaces-everywhere"},
		{"Go 1.22 Released!", "go-1-22-released"},
		{"---", ""},
		{"ALL CAPS", "all-caps"},
	}
	for _, tt := range tests {
		if got := slugify(tt.title); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestBlogPosts(t *testing.T) {
	t.Parallel()
	db := setupBlogTestDB(t)
	s := &Server{db: db, blogRepo: repository.NewBlogRepository(db)}
	app := fiber.New()

	author := createTestUser(t, db, "author@e.com", models.RoleUser)
	withAuthor := func(h fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			c.Locals("userID", author.ID)
			c.Locals("userRole", author.Role)
			return h(c)
		}
	}
	app.Get("/blog", s.GetBlogPosts)
	app.Get("/blog/my", withAuthor(s.GetMyBlogPosts))
	app.Post("/blog", withAuthor(s.CreateBlogPost))
	app.Get("/blog/:slug", s.GetBlogPostBySlug)

	create := func(body map[string]any) *http.Response {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/blog", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("create derives slug", func(t *testing.T) {
		resp := create(map[string]any{"title": "Shipping Fast", "content": "body", "published": true})
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		var result struct {
			Post models.BlogPost `json:"post"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		if result.Post.Slug != "shipping-fast" {
			t.Errorf("expected slug shipping-fast, got %q", result.Post.Slug)
		}
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		resp := create(map[string]any{"title": "Shipping Fast", "content": "again", "published": true})
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409, got %d", resp.StatusCode)
		}
	})

	t.Run("draft hidden from public routes", func(t *testing.T) {
		resp := create(map[string]any{"title": "Secret Draft", "content": "wip"})
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}

		req := httptest.NewRequest(http.MethodGet, "/blog", nil)
		listResp, _ := app.Test(req)
		defer func() { _ = listResp.Body.Close() }()
		var list struct {
			Posts []models.BlogPost `json:"posts"`
		}
		_ = json.NewDecoder(listResp.Body).Decode(&list)
		if len(list.Posts) != 1 {
			t.Errorf("expected 1 published post, got %d", len(list.Posts))
		}

		req = httptest.NewRequest(http.MethodGet, "/blog/secret-draft", nil)
		slugResp, _ := app.Test(req)
		defer func() { _ = slugResp.Body.Close() }()
		if slugResp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 for draft slug, got %d", slugResp.StatusCode)
		}
	})

	t.Run("my posts include drafts", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/blog/my", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		var list struct {
			Posts []models.BlogPost `json:"posts"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&list)
		if len(list.Posts) != 2 {
			t.Errorf("expected 2 own posts, got %d", len(list.Posts))
		}
	})

	t.Run("published post by slug", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/blog/shipping-fast", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})
}
