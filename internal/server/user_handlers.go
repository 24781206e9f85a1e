package server

import (
	"forgehub/internal/models"
	"forgehub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update own account
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} object{user=models.User}
// @Failure 400 {object} object{error=string}
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respond(c, err)
	}

	var req struct {
		FullName *string `json:"full_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.FullName != nil {
		if err := validation.ValidateFullName(*req.FullName); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.FullName = *req.FullName
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// GetAllUsers handles GET /api/admin/users
// @Summary List all users
// @Tags admin
// @Produce json
// @Success 200 {object} object{users=[]models.User,total=int}
// @Router /admin/users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}
	total, err := s.userRepo.Count(c.Context())
	if err != nil {
		return respond(c, err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// DeactivateUser handles POST /api/admin/users/:id/deactivate
// @Summary Deactivate a user account
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{user=models.User}
// @Failure 404 {object} object{error=string}
// @Router /admin/users/{id}/deactivate [post]
func (s *Server) DeactivateUser(c *fiber.Ctx) error {
	return s.setUserActive(c, false)
}

// ReactivateUser handles POST /api/admin/users/:id/reactivate
// @Summary Reactivate a user account
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{user=models.User}
// @Failure 404 {object} object{error=string}
// @Router /admin/users/{id}/reactivate [post]
func (s *Server) ReactivateUser(c *fiber.Ctx) error {
	return s.setUserActive(c, true)
}

func (s *Server) setUserActive(c *fiber.Ctx, active bool) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if !active && id == currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot deactivate your own account"))
	}

	user, err := s.userRepo.SetActive(c.Context(), id, active)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// GetPlatformStats handles GET /api/admin/stats
// @Summary Platform-wide entity counts
// @Tags admin
// @Produce json
// @Success 200 {object} object{users=int,developers=int,projects=int,pending_reviews=int,pending_reports=int}
// @Router /admin/stats [get]
func (s *Server) GetPlatformStats(c *fiber.Ctx) error {
	ctx := c.Context()

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return respond(c, err)
	}
	developers, err := s.developerRepo.Count(ctx)
	if err != nil {
		return respond(c, err)
	}
	projects, err := s.projectRepo.Count(ctx)
	if err != nil {
		return respond(c, err)
	}
	pendingReviews, err := s.reviewRepo.CountByStatus(ctx, models.ReviewStatusPending)
	if err != nil {
		return respond(c, err)
	}
	pendingReports, err := s.reportRepo.CountByStatus(ctx, models.ReportStatusPending)
	if err != nil {
		return respond(c, err)
	}

	return c.JSON(fiber.Map{
		"users":           users,
		"developers":      developers,
		"projects":        projects,
		"pending_reviews": pendingReviews,
		"pending_reports": pendingReports,
	})
}

// FeatureProject handles POST /api/admin/projects/:id/feature
// @Summary Toggle a project's featured flag
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} object{project=models.Project}
// @Failure 404 {object} object{error=string}
// @Router /admin/projects/{id}/feature [post]
func (s *Server) FeatureProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Featured *bool `json:"featured"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectRepo.GetByID(c.Context(), id)
	if err != nil {
		return respond(c, err)
	}

	// Omitted flag toggles; explicit flag sets.
	if req.Featured != nil {
		project.Featured = *req.Featured
	} else {
		project.Featured = !project.Featured
	}

	if err := s.projectRepo.Update(c.Context(), project); err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"project": project})
}
