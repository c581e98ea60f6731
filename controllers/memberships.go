package controllers

import (
	"strconv"

	"gymdesk_go/database"
	"gymdesk_go/middleware"
	"gymdesk_go/models"
	"gymdesk_go/services"
	"gymdesk_go/utils"

	"github.com/gofiber/fiber/v2"
)

// MembershipController manages plan templates. Plan edits never touch the
// snapshots of assignments already sold.
type MembershipController struct{}

// MembershipRequest represents the create/update plan body
type MembershipRequest struct {
	Name             string  `json:"name" validate:"required,max=255"`
	Description      string  `json:"description"`
	MaxAttendanceQty *int    `json:"max_attendance_qty" validate:"omitempty,min=1"` // null = unlimited
	DurationDays     int     `json:"duration_days" validate:"required,min=1"`
	Price            float64 `json:"price" validate:"min=0"`
	IsActive         *bool   `json:"is_active"`
}

// GetMemberships returns plans; active_only=true filters to sellable ones
func (mpc *MembershipController) GetMemberships(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var plans []models.Membership
	var total int64

	query := database.DB.Model(&models.Membership{})
	if c.Query("active_only") == "true" {
		query = query.Where("is_active = ?", true)
	}

	query.Count(&total)

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch membership plans",
		})
	}

	return c.JSON(fiber.Map{
		"memberships": plans,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetMembership returns a specific plan
func (mpc *MembershipController) GetMembership(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid membership ID",
		})
	}

	var plan models.Membership
	if err := database.DB.First(&plan, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Membership plan not found",
		})
	}

	return c.JSON(fiber.Map{"membership": plan})
}

// CreateMembership creates a new plan template
func (mpc *MembershipController) CreateMembership(c *fiber.Ctx) error {
	var req MembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	plan := models.Membership{
		Name:             utils.SanitizeString(req.Name),
		Description:      req.Description,
		MaxAttendanceQty: req.MaxAttendanceQty,
		DurationDays:     req.DurationDays,
		Price:            req.Price,
		IsActive:         true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create membership plan",
		})
	}

	middleware.LogActivity(c, "CREATE", "memberships", plan.ID, plan)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Membership plan created successfully",
		"membership": plan,
	})
}

// UpdateMembership edits the plan template. Assignments already sold keep
// their snapshot terms.
func (mpc *MembershipController) UpdateMembership(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid membership ID",
		})
	}

	var plan models.Membership
	if err := database.DB.First(&plan, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Membership plan not found",
		})
	}

	var req MembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	updates := map[string]interface{}{
		"name":               utils.SanitizeString(req.Name),
		"description":        req.Description,
		"max_attendance_qty": req.MaxAttendanceQty,
		"duration_days":      req.DurationDays,
		"price":              req.Price,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := database.DB.Model(&plan).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update membership plan",
		})
	}

	middleware.LogActivity(c, "UPDATE", "memberships", plan.ID, updates)

	database.DB.First(&plan, plan.ID)
	return c.JSON(fiber.Map{
		"message":    "Membership plan updated successfully",
		"membership": plan,
	})
}

// DeleteMembership removes a plan that has never been sold. Plans with
// assignments must be deactivated instead so historical snapshots keep a
// valid parent.
func (mpc *MembershipController) DeleteMembership(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid membership ID",
		})
	}

	var plan models.Membership
	if err := database.DB.First(&plan, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Membership plan not found",
		})
	}

	var assigned int64
	database.DB.Model(&models.MemberMembership{}).Where("membership_id = ?", plan.ID).Count(&assigned)
	if assigned > 0 {
		return respondServiceError(c, services.ErrMembershipHasAssignments)
	}

	if err := database.DB.Unscoped().Delete(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete membership plan",
		})
	}

	middleware.LogActivity(c, "DELETE", "memberships", plan.ID, fiber.Map{"name": plan.Name})

	return c.JSON(fiber.Map{"message": "Membership plan deleted successfully"})
}
