package server

import (
	"forgehub/internal/models"
	"forgehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProjectReviews handles GET /api/projects/:id/reviews
// @Summary List approved reviews for a project
// @Tags reviews
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} object{reviews=[]models.Review}
// @Failure 404 {object} object{error=string}
// @Router /projects/{id}/reviews [get]
func (s *Server) GetProjectReviews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.projectRepo.GetByID(c.Context(), id); err != nil {
		return respond(c, err)
	}

	p := parsePagination(c, 20)
	reviews, err := s.reviewRepo.ListByProject(c.Context(), id, p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// GetReviewDistribution handles GET /api/projects/:id/reviews/distribution
// @Summary Rating distribution of a project
// @Tags reviews
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} object{distribution=map[string]int}
// @Failure 404 {object} object{error=string}
// @Router /projects/{id}/reviews/distribution [get]
func (s *Server) GetReviewDistribution(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.projectRepo.GetByID(c.Context(), id); err != nil {
		return respond(c, err)
	}

	dist, err := s.reviewRepo.Distribution(c.Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"distribution": dist})
}

// CreateReview handles POST /api/projects/:id/reviews
// @Summary Submit a review for a project
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 201 {object} object{review=models.Review}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /projects/{id}/reviews [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Title   string `json:"title"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.Context(), service.CreateReviewInput{
		UserID:    currentUserID(c),
		ProjectID: id,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": review})
}

// GetPendingReviews handles GET /api/admin/reviews/pending
// @Summary List reviews awaiting moderation
// @Tags admin
// @Produce json
// @Success 200 {object} object{reviews=[]models.Review}
// @Router /admin/reviews/pending [get]
func (s *Server) GetPendingReviews(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	reviews, err := s.reviewRepo.ListPending(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// ApproveReview handles POST /api/admin/reviews/:id/approve
// @Summary Approve a pending review
// @Tags admin
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} object{review=models.Review}
// @Failure 404 {object} object{error=string}
// @Router /admin/reviews/{id}/approve [post]
func (s *Server) ApproveReview(c *fiber.Ctx) error {
	return s.moderateReview(c, true)
}

// RejectReview handles POST /api/admin/reviews/:id/reject
// @Summary Reject a pending review
// @Tags admin
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} object{review=models.Review}
// @Failure 404 {object} object{error=string}
// @Router /admin/reviews/{id}/reject [post]
func (s *Server) RejectReview(c *fiber.Ctx) error {
	return s.moderateReview(c, false)
}

func (s *Server) moderateReview(c *fiber.Ctx, approve bool) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewService.ModerateReview(c.Context(), service.ModerateReviewInput{
		ReviewID: id,
		Approve:  approve,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"review": review})
}
