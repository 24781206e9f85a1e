package server

import (
	"forgehub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDevelopers handles GET /api/developers
// @Summary List developer profiles
// @Tags developers
// @Produce json
// @Param available query bool false "Only available developers"
// @Success 200 {object} object{developers=[]models.DeveloperProfile}
// @Router /developers [get]
func (s *Server) GetDevelopers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	availableOnly := c.QueryBool("available", false)

	profiles, err := s.developerRepo.List(c.Context(), availableOnly, p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"developers": profiles})
}

// GetTopDevelopers handles GET /api/developers/top
// @Summary List top rated developers
// @Tags developers
// @Produce json
// @Success 200 {object} object{developers=[]models.DeveloperProfile}
// @Router /developers/top [get]
func (s *Server) GetTopDevelopers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > maxPaginationLimit {
		limit = 10
	}

	profiles, err := s.developerRepo.TopRated(c.Context(), limit)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"developers": profiles})
}

// GetDeveloper handles GET /api/developers/:id
// @Summary Get a developer profile
// @Tags developers
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} object{developer=models.DeveloperProfile}
// @Failure 404 {object} object{error=string}
// @Router /developers/{id} [get]
func (s *Server) GetDeveloper(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.developerRepo.GetByID(c.Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"developer": profile})
}

// CreateDeveloperProfile handles POST /api/developers
// @Summary Create own developer profile
// @Tags developers
// @Accept json
// @Produce json
// @Success 201 {object} object{developer=models.DeveloperProfile}
// @Failure 409 {object} object{error=string}
// @Router /developers [post]
func (s *Server) CreateDeveloperProfile(c *fiber.Ctx) error {
	var req struct {
		Expertise       []string `json:"expertise"`
		YearsExperience int      `json:"years_experience"`
		WebsiteURL      string   `json:"website_url"`
		GithubURL       string   `json:"github_url"`
		HourlyRate      float64  `json:"hourly_rate"`
		Bio             string   `json:"bio"`
		Available       *bool    `json:"available"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.YearsExperience < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Years of experience must not be negative"))
	}
	if req.HourlyRate < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Hourly rate must not be negative"))
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	profile := &models.DeveloperProfile{
		UserID:          currentUserID(c),
		Expertise:       req.Expertise,
		YearsExperience: req.YearsExperience,
		WebsiteURL:      req.WebsiteURL,
		GithubURL:       req.GithubURL,
		HourlyRate:      req.HourlyRate,
		Bio:             req.Bio,
		Available:       available,
	}
	if err := s.developerRepo.Create(c.Context(), profile); err != nil {
		return respond(c, err)
	}

	created, err := s.developerRepo.GetByUserID(c.Context(), profile.UserID)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"developer": created})
}

// UpdateMyDeveloperProfile handles PUT /api/developers/me
// @Summary Update own developer profile
// @Tags developers
// @Accept json
// @Produce json
// @Success 200 {object} object{developer=models.DeveloperProfile}
// @Failure 404 {object} object{error=string}
// @Router /developers/me [put]
func (s *Server) UpdateMyDeveloperProfile(c *fiber.Ctx) error {
	profile, err := s.developerRepo.GetByUserID(c.Context(), currentUserID(c))
	if err != nil {
		return respond(c, err)
	}
	if profile == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Developer profile", currentUserID(c)))
	}

	var req struct {
		Expertise       *[]string `json:"expertise"`
		YearsExperience *int      `json:"years_experience"`
		WebsiteURL      *string   `json:"website_url"`
		GithubURL       *string   `json:"github_url"`
		HourlyRate      *float64  `json:"hourly_rate"`
		Bio             *string   `json:"bio"`
		Available       *bool     `json:"available"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Expertise != nil {
		profile.Expertise = *req.Expertise
	}
	if req.YearsExperience != nil {
		if *req.YearsExperience < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Years of experience must not be negative"))
		}
		profile.YearsExperience = *req.YearsExperience
	}
	if req.WebsiteURL != nil {
		profile.WebsiteURL = *req.WebsiteURL
	}
	if req.GithubURL != nil {
		profile.GithubURL = *req.GithubURL
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Hourly rate must not be negative"))
		}
		profile.HourlyRate = *req.HourlyRate
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Available != nil {
		profile.Available = *req.Available
	}

	if err := s.developerRepo.Update(c.Context(), profile); err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"developer": profile})
}
