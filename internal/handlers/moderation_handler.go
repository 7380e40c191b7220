package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/campuslink/campuslink-backend/internal/dto"
	"github.com/campuslink/campuslink-backend/internal/middleware"
	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/campuslink/campuslink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
	contentService    *services.ContentService
}

func NewModerationHandler(moderationService *services.ModerationService, contentService *services.ContentService) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
		contentService:    contentService,
	}
}

func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: "unauthorized", Message: "Unauthorized",
		})
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: "Invalid request body",
		})
	}

	report, err := h.moderationService.CreateReport(userID, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateReportResponse{ReportID: report.ID})
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status", "all")
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	if limit > 100 {
		limit = 100
	}

	reports, total, err := h.moderationService.ListReports(status, limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *ModerationHandler) ResolveReport(c *fiber.Ctx) error {
	moderatorID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: "unauthorized", Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: "Invalid report ID",
		})
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: "Invalid request body",
		})
	}

	report, err := h.moderationService.ResolveReport(reportID, moderatorID, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(report)
}

func (h *ModerationHandler) EditContent(c *fiber.Ctx) error {
	kind, ok := models.ParseItemKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "invalid_item_kind", Message: "Unknown item kind",
		})
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: "Invalid item ID",
		})
	}

	var req dto.EditContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: "Invalid request body",
		})
	}

	if err := h.contentService.EditContent(kind, itemID, &req); err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Content updated successfully"})
}

// writeServiceError maps service error kinds to HTTP. Storage errors are
// logged and masked; every response carries a stable code and a readable
// message.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return respondError(c, fiber.StatusBadRequest, "validation_error", err)
	case errors.Is(err, services.ErrInvalidItemKind):
		return respondError(c, fiber.StatusBadRequest, "invalid_item_kind", err)
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrReportNotFound):
		return respondError(c, fiber.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrInvalidState):
		return respondError(c, fiber.StatusConflict, "invalid_state", err)
	case errors.Is(err, services.ErrConflict):
		return respondError(c, fiber.StatusConflict, "conflict", err)
	}

	slog.Error("moderation request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Code: "persistence_error", Message: "Internal server error",
	})
}

func respondError(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Code: code, Message: err.Error(),
	})
}
