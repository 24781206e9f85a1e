package server

import (
	"regexp"
	"strings"

	"forgehub/internal/models"

	"github.com/gofiber/fiber/v2"
)

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL-safe slug from a post title.
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugCleaner.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GetBlogPosts handles GET /api/blog
// @Summary List published blog posts
// @Tags blog
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} object{posts=[]models.BlogPost}
// @Router /blog [get]
func (s *Server) GetBlogPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.blogRepo.ListPublished(c.Context(), c.Query("category"), p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetMyBlogPosts handles GET /api/blog/my
// @Summary List own blog posts including drafts
// @Tags blog
// @Produce json
// @Success 200 {object} object{posts=[]models.BlogPost}
// @Router /blog/my [get]
func (s *Server) GetMyBlogPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.blogRepo.ListByUser(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetBlogPostBySlug handles GET /api/blog/:slug
// @Summary Get a published blog post by slug
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} object{post=models.BlogPost}
// @Failure 404 {object} object{error=string}
// @Router /blog/{slug} [get]
func (s *Server) GetBlogPostBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	post, err := s.blogRepo.GetBySlug(c.Context(), slug)
	if err != nil {
		return respond(c, err)
	}
	// Drafts are only visible to their author via /blog/my.
	if post == nil || !post.Published {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Blog post", slug))
	}
	return c.JSON(fiber.Map{"post": post})
}

// CreateBlogPost handles POST /api/blog
// @Summary Create a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Success 201 {object} object{post=models.BlogPost}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /blog [post]
func (s *Server) CreateBlogPost(c *fiber.Ctx) error {
	var req struct {
		Title     string   `json:"title"`
		Content   string   `json:"content"`
		Excerpt   string   `json:"excerpt"`
		Category  string   `json:"category"`
		Tags      []string `json:"tags"`
		Published bool     `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	slug := slugify(req.Title)
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title must contain at least one alphanumeric character"))
	}

	post := &models.BlogPost{
		UserID:    currentUserID(c),
		Title:     req.Title,
		Slug:      slug,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Category:  req.Category,
		Tags:      req.Tags,
		Published: req.Published,
	}
	if err := s.blogRepo.Create(c.Context(), post); err != nil {
		return respond(c, err)
	}

	created, err := s.blogRepo.GetByID(c.Context(), post.ID)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": created})
}

// UpdateBlogPost handles PUT /api/blog/:id
// @Summary Update a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{post=models.BlogPost}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /blog/{id} [put]
func (s *Server) UpdateBlogPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.blogRepo.GetByID(c.Context(), id)
	if err != nil {
		return respond(c, err)
	}
	if post.UserID != currentUserID(c) && currentUserRole(c) != models.RoleAdmin {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only update your own posts"))
	}

	var req struct {
		Title     *string   `json:"title"`
		Content   *string   `json:"content"`
		Excerpt   *string   `json:"excerpt"`
		Category  *string   `json:"category"`
		Tags      *[]string `json:"tags"`
		Published *bool     `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title != nil {
		if *req.Title == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title is required"))
		}
		slug := slugify(*req.Title)
		if slug == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title must contain at least one alphanumeric character"))
		}
		post.Title = *req.Title
		post.Slug = slug
	}
	if req.Content != nil {
		if *req.Content == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Content is required"))
		}
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := s.blogRepo.Update(c.Context(), post); err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}

// DeleteBlogPost handles DELETE /api/blog/:id
// @Summary Delete a blog post
// @Tags blog
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /blog/{id} [delete]
func (s *Server) DeleteBlogPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.blogRepo.GetByID(c.Context(), id)
	if err != nil {
		return respond(c, err)
	}
	if post.UserID != currentUserID(c) && currentUserRole(c) != models.RoleAdmin {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own posts"))
	}

	if err := s.blogRepo.Delete(c.Context(), id); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
