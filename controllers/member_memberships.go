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

// MemberMembershipController exposes the assignment engine: selling a plan
// to a member, cancelling, and the derived quota accessors.
type MemberMembershipController struct {
	service *services.MembershipService
}

func NewMemberMembershipController() *MemberMembershipController {
	return &MemberMembershipController{service: services.NewMembershipService()}
}

// AssignMembershipRequest represents the assignment (sale) body
type AssignMembershipRequest struct {
	MemberID     uint       `json:"member_id" validate:"required"`
	MembershipID uint       `json:"membership_id" validate:"required"`
	StartedAt    *time.Time `json:"started_at"`
}

// attendanceCounts returns used-visit counts per assignment with one
// grouped query instead of a count per row.
func attendanceCounts(assignments []models.MemberMembership) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(assignments))
	if len(assignments) == 0 {
		return counts, nil
	}

	ids := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
	}

	type row struct {
		MemberMembershipID uint
		Used               int64
	}
	var rows []row
	err := database.DB.Model(&models.Attendance{}).
		Select("member_membership_id, COUNT(*) AS used").
		Where("member_membership_id IN ?", ids).
		Group("member_membership_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.MemberMembershipID] = r.Used
	}
	return counts, nil
}

// GetMemberMemberships returns assignments with derived quota fields
func (mmc *MemberMembershipController) GetMemberMemberships(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var assignments []models.MemberMembership
	var total int64

	query := database.DB.Model(&models.MemberMembership{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if memberID := c.Query("member_id"); memberID != "" {
		query = query.Where("member_id = ?", memberID)
	}

	query.Count(&total)

	if err := query.Preload("Member").Preload("Membership").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&assignments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch member memberships",
		})
	}

	counts, err := attendanceCounts(assignments)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch attendance counts",
		})
	}

	dtos := make([]utils.AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		dtos = append(dtos, utils.ToAssignmentDTO(a, counts[a.ID]))
	}

	return c.JSON(fiber.Map{
		"member_memberships": dtos,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetMemberMembership returns one assignment with derived quota and the
// visit history
func (mmc *MemberMembershipController) GetMemberMembership(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid member membership ID",
		})
	}

	assignment, err := mmc.service.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	used, err := mmc.service.UsedQty(assignment.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	var attendances []models.Attendance
	database.DB.Where("member_membership_id = ?", assignment.ID).
		Order("check_in_at DESC").Find(&attendances)

	return c.JSON(fiber.Map{
		"member_membership": utils.ToAssignmentDTO(*assignment, used),
		"attendances":       utils.ToAttendanceDTOs(attendances),
	})
}

// AssignMembership sells a plan to a member, freezing the plan terms into
// the snapshot
func (mmc *MemberMembershipController) AssignMembership(c *fiber.Ctx) error {
	var req AssignMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	assignment, err := mmc.service.AssignMembership(req.MemberID, req.MembershipID, req.StartedAt)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "CREATE", "member-memberships", assignment.ID, fiber.Map{
		"member_id":     assignment.MemberID,
		"membership_id": assignment.MembershipID,
		"price":         assignment.SnapshotPrice,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":           "Membership assigned successfully",
		"member_membership": utils.ToAssignmentDTO(*assignment, 0),
	})
}

// CancelMemberMembership transitions the assignment to cancelled
func (mmc *MemberMembershipController) CancelMemberMembership(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid member membership ID",
		})
	}

	assignment, err := mmc.service.Cancel(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	used, err := mmc.service.UsedQty(assignment.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "UPDATE", "member-memberships", assignment.ID, fiber.Map{"status": assignment.Status})

	return c.JSON(fiber.Map{
		"message":           "Membership cancelled successfully",
		"member_membership": utils.ToAssignmentDTO(*assignment, used),
	})
}

// DeleteMemberMembership hard-deletes an assignment and its attendances
func (mmc *MemberMembershipController) DeleteMemberMembership(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid member membership ID",
		})
	}

	if err := mmc.service.Delete(id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "DELETE", "member-memberships", id, nil)

	return c.JSON(fiber.Map{"message": "Member membership deleted successfully"})
}

// GetRemainingQty is the raw quota accessor used by card/profile rendering
func (mmc *MemberMembershipController) GetRemainingQty(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid member membership ID",
		})
	}

	remaining, err := mmc.service.RemainingQty(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"member_membership_id": id,
		"remaining_qty":        remaining, // null = unlimited
	})
}

// GetCanCheckIn reports eligibility without side effects
func (mmc *MemberMembershipController) GetCanCheckIn(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid member membership ID",
		})
	}

	ok, err := mmc.service.CanCheckIn(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"member_membership_id": id,
		"can_check_in":         ok,
	})
}
