package controllers

import (
	"strconv"
	"time"

	"gymdesk_go/database"
	"gymdesk_go/middleware"
	"gymdesk_go/models"
	"gymdesk_go/services"
	"gymdesk_go/utils"

	"github.com/gofiber/fiber/v2"
)

// AttendanceController exposes the attendance ledger: check-in, check-out
// and visit listings.
type AttendanceController struct {
	service *services.AttendanceService
}

func NewAttendanceController() *AttendanceController {
	return &AttendanceController{service: services.NewAttendanceService()}
}

// CheckInRequest represents the check-in body
type CheckInRequest struct {
	MemberMembershipID uint   `json:"member_membership_id" validate:"required"`
	Notes              string `json:"notes" validate:"omitempty,max=2000"`
}

// CheckOutRequest represents the check-out body
type CheckOutRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

// GetAttendances returns visits with pagination, newest first
func (ac *AttendanceController) GetAttendances(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "15"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 15
	}
	offset := (page - 1) * limit

	var attendances []models.Attendance
	var total int64

	query := database.DB.Model(&models.Attendance{})

	if assignmentID := c.Query("member_membership_id"); assignmentID != "" {
		query = query.Where("member_membership_id = ?", assignmentID)
	}
	if c.Query("open_only") == "true" {
		query = query.Where("check_out_at IS NULL")
	}

	query.Count(&total)

	if err := query.Order("check_in_at DESC").Offset(offset).Limit(limit).Find(&attendances).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch attendances",
		})
	}

	return c.JSON(fiber.Map{
		"attendances": utils.ToAttendanceDTOs(attendances),
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetToday returns today's visits for the front-desk screen
func (ac *AttendanceController) GetToday(c *fiber.Ctx) error {
	start := startOfToday()
	end := start.AddDate(0, 0, 1)

	var attendances []models.Attendance
	if err := database.DB.
		Where("check_in_at >= ? AND check_in_at < ?", start, end).
		Order("check_in_at DESC").Find(&attendances).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch attendances",
		})
	}

	return c.JSON(fiber.Map{
		"attendances": utils.ToAttendanceDTOs(attendances),
		"date":        start.Format(time.DateOnly),
	})
}

// startOfToday returns local midnight; visit days follow the gym's wall
// clock, not UTC.
func startOfToday() time.Time {
	now := time.Now().In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// GetAttendance returns one visit
func (ac *AttendanceController) GetAttendance(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attendance ID",
		})
	}

	attendance, err := ac.service.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"attendance": utils.ToAttendanceDTO(*attendance)})
}

// CheckIn validates eligibility and appends a visit. A refused check-in may
// still flip the assignment status to expired/exhausted; that write-back is
// how stale statuses self-heal.
func (ac *AttendanceController) CheckIn(c *fiber.Ctx) error {
	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	recordedBy, _ := middleware.GetCurrentUser(c)

	attendance, err := ac.service.CheckIn(req.MemberMembershipID, recordedBy, req.Notes)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "CREATE", "attendances", attendance.ID, fiber.Map{
		"member_membership_id": attendance.MemberMembershipID,
		"remaining_before":     attendance.SnapshotRemainingBefore,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Check-in successful",
		"attendance": utils.ToAttendanceDTO(*attendance),
	})
}

// CheckOut closes an open visit
func (ac *AttendanceController) CheckOut(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attendance ID",
		})
	}

	var req CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	attendance, err := ac.service.CheckOut(id, req.Notes)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "UPDATE", "attendances", attendance.ID, fiber.Map{
		"duration_minutes": attendance.DurationMinutes(),
	})

	return c.JSON(fiber.Map{
		"message":    "Check-out successful",
		"attendance": utils.ToAttendanceDTO(*attendance),
	})
}

// DeleteAttendance is an administrative override that hard-deletes a visit
func (ac *AttendanceController) DeleteAttendance(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attendance ID",
		})
	}

	if err := ac.service.Delete(id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "DELETE", "attendances", id, nil)

	return c.JSON(fiber.Map{"message": "Attendance deleted successfully"})
}
