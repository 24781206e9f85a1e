package server

import (
	"forgehub/internal/models"
	"forgehub/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetProjects handles GET /api/projects
// @Summary List projects
// @Description Browse projects with optional status filter and pagination
// @Tags projects
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{projects=[]models.Project,total=int}
// @Router /projects [get]
func (s *Server) GetProjects(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	var filter repository.ProjectFilter
	if raw := c.Query("status"); raw != "" {
		status := models.ProjectStatus(raw)
		if !status.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid status filter"))
		}
		filter.Status = status
	}

	projects, err := s.projectRepo.List(c.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}

	total, err := s.projectRepo.Count(c.Context())
	if err != nil {
		return respond(c, err)
	}

	return c.JSON(fiber.Map{
		"projects": projects,
		"total":    total,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// GetFeaturedProjects handles GET /api/projects/featured
// @Summary List featured projects
// @Tags projects
// @Produce json
// @Success 200 {object} object{projects=[]models.Project}
// @Router /projects/featured [get]
func (s *Server) GetFeaturedProjects(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	featured := true
	projects, err := s.projectRepo.List(c.Context(), repository.ProjectFilter{
		Status:   models.ProjectStatusActive,
		Featured: &featured,
	}, p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"projects": projects})
}

// GetProject handles GET /api/projects/:id
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} object{project=models.Project}
// @Failure 404 {object} object{error=string}
// @Router /projects/{id} [get]
func (s *Server) GetProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	project, err := s.projectRepo.GetByID(c.Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"project": project})
}

// CreateProject handles POST /api/projects
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Success 201 {object} object{project=models.Project}
// @Failure 400 {object} object{error=string}
// @Router /projects [post]
func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		TechStack   []string `json:"tech_stack"`
		MediaURL    string   `json:"media_url"`
		RepoURL     string   `json:"repo_url"`
		LiveURL     string   `json:"live_url"`
		Status      string   `json:"status"`
		Budget      float64  `json:"budget"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Description == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and description are required"))
	}
	if len(req.Title) > 200 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title too long (max 200 characters)"))
	}
	if req.Budget < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Budget must not be negative"))
	}

	status := models.ProjectStatusDraft
	if req.Status != "" {
		status = models.ProjectStatus(req.Status)
		if !status.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid status"))
		}
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		MediaURL:    req.MediaURL,
		RepoURL:     req.RepoURL,
		LiveURL:     req.LiveURL,
		Status:      status,
		Budget:      req.Budget,
		UserID:      currentUserID(c),
	}
	if err := s.projectRepo.Create(c.Context(), project); err != nil {
		return respond(c, err)
	}

	created, err := s.projectRepo.GetByID(c.Context(), project.ID)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"project": created})
}

// UpdateProject handles PUT /api/projects/:id
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} object{project=models.Project}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /projects/{id} [put]
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	project, err := s.projectRepo.GetByID(c.Context(), id)
	if err != nil {
		return respond(c, err)
	}
	if project.UserID != currentUserID(c) && currentUserRole(c) != models.RoleAdmin {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only update your own projects"))
	}

	var req struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		TechStack   *[]string `json:"tech_stack"`
		MediaURL    *string   `json:"media_url"`
		RepoURL     *string   `json:"repo_url"`
		LiveURL     *string   `json:"live_url"`
		Status      *string   `json:"status"`
		Budget      *float64  `json:"budget"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title != nil {
		if *req.Title == "" || len(*req.Title) > 200 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title must be 1-200 characters"))
		}
		project.Title = *req.Title
	}
	if req.Description != nil {
		if *req.Description == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Description is required"))
		}
		project.Description = *req.Description
	}
	if req.TechStack != nil {
		project.TechStack = *req.TechStack
	}
	if req.MediaURL != nil {
		project.MediaURL = *req.MediaURL
	}
	if req.RepoURL != nil {
		project.RepoURL = *req.RepoURL
	}
	if req.LiveURL != nil {
		project.LiveURL = *req.LiveURL
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		if !status.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid status"))
		}
		project.Status = status
	}
	if req.Budget != nil {
		if *req.Budget < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Budget must not be negative"))
		}
		project.Budget = *req.Budget
	}

	if err := s.projectRepo.Update(c.Context(), project); err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"project": project})
}

// DeleteProject handles DELETE /api/projects/:id
// @Summary Delete a project
// @Tags projects
// @Param id path int true "Project ID"
// @Success 204
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /projects/{id} [delete]
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	project, err := s.projectRepo.GetByID(c.Context(), id)
	if err != nil {
		return respond(c, err)
	}
	if project.UserID != currentUserID(c) && currentUserRole(c) != models.RoleAdmin {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own projects"))
	}

	if err := s.projectRepo.Delete(c.Context(), id); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMyProjects handles GET /api/users/me/projects
// @Summary List own projects
// @Tags users
// @Produce json
// @Success 200 {object} object{projects=[]models.Project}
// @Router /users/me/projects [get]
func (s *Server) GetMyProjects(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	projects, err := s.projectRepo.ListByUser(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"projects": projects})
}
