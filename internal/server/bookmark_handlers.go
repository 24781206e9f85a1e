package server

import (
	"forgehub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateBookmark handles POST /api/bookmarks
// @Summary Bookmark a project or developer
// @Tags bookmarks
// @Accept json
// @Produce json
// @Success 201 {object} object{bookmark=models.Bookmark}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /bookmarks [post]
func (s *Server) CreateBookmark(c *fiber.Ctx) error {
	var req struct {
		TargetType string `json:"target_type"`
		TargetID   uint   `json:"target_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	targetType := models.BookmarkTarget(req.TargetType)
	if !targetType.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Target type must be project or developer"))
	}
	if req.TargetID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Target ID is required"))
	}

	// Verify the target exists before saving the pointer to it.
	switch targetType {
	case models.BookmarkTargetProject:
		if _, err := s.projectRepo.GetByID(c.Context(), req.TargetID); err != nil {
			return respond(c, err)
		}
	case models.BookmarkTargetDeveloper:
		if _, err := s.developerRepo.GetByID(c.Context(), req.TargetID); err != nil {
			return respond(c, err)
		}
	}

	bookmark := &models.Bookmark{
		UserID:     currentUserID(c),
		TargetType: targetType,
		TargetID:   req.TargetID,
	}
	if err := s.bookmarkRepo.Create(c.Context(), bookmark); err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"bookmark": bookmark})
}

// GetBookmarks handles GET /api/bookmarks
// @Summary List own bookmarks
// @Tags bookmarks
// @Produce json
// @Param type query string false "Filter by target type"
// @Success 200 {object} object{bookmarks=[]models.Bookmark}
// @Router /bookmarks [get]
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	var targetType models.BookmarkTarget
	if raw := c.Query("type"); raw != "" {
		targetType = models.BookmarkTarget(raw)
		if !targetType.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Target type must be project or developer"))
		}
	}

	bookmarks, err := s.bookmarkRepo.ListByUser(c.Context(), currentUserID(c), targetType, p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"bookmarks": bookmarks})
}

// DeleteBookmark handles DELETE /api/bookmarks/:id
// @Summary Remove a bookmark
// @Tags bookmarks
// @Param id path int true "Bookmark ID"
// @Success 204
// @Failure 404 {object} object{error=string}
// @Router /bookmarks/{id} [delete]
func (s *Server) DeleteBookmark(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.bookmarkRepo.Delete(c.Context(), currentUserID(c), id); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
