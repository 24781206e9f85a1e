package server

import (
	"forgehub/internal/models"
	"forgehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport handles POST /api/reports
// @Summary Report a project or review
// @Tags reports
// @Accept json
// @Produce json
// @Success 201 {object} object{report=models.Report}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /reports [post]
func (s *Server) CreateReport(c *fiber.Ctx) error {
	var req struct {
		TargetType  string `json:"target_type"`
		TargetID    uint   `json:"target_id"`
		Reason      string `json:"reason"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.CreateReport(c.Context(), service.CreateReportInput{
		ReporterID:  currentUserID(c),
		TargetType:  models.ReportTarget(req.TargetType),
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"report": report})
}

// GetReports handles GET /api/admin/reports
// @Summary List reports
// @Tags admin
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} object{reports=[]models.Report}
// @Router /admin/reports [get]
func (s *Server) GetReports(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	var status models.ReportStatus
	if raw := c.Query("status"); raw != "" {
		status = models.ReportStatus(raw)
		if status != models.ReportStatusPending && status != models.ReportStatusResolved && status != models.ReportStatusDismissed {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid status filter"))
		}
	}

	reports, err := s.reportRepo.List(c.Context(), status, p.Limit, p.Offset)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// ResolveReport handles POST /api/admin/reports/:id/resolve
// @Summary Resolve or dismiss a report
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} object{report=models.Report}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /admin/reports/{id}/resolve [post]
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status     string `json:"status"`
		AdminNotes string `json:"admin_notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.ResolveReport(c.Context(), service.ResolveReportInput{
		ReportID:   id,
		Status:     models.ReportStatus(req.Status),
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"report": report})
}
