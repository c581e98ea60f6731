package controllers

import (
	"strconv"
	"strings"
	"time"

	"gymdesk_go/config"
	"gymdesk_go/database"
	"gymdesk_go/middleware"
	"gymdesk_go/models"
	"gymdesk_go/storage"
	"gymdesk_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MemberController struct{}

// MemberRequest represents the create/update member body
type MemberRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// GetMembers returns all members with pagination and search
func (mc *MemberController) GetMembers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var members []models.Member
	var total int64

	query := database.DB.Model(&models.Member{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR member_code LIKE ? OR phone LIKE ?", like, like, like)
	}

	query.Count(&total)

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&members).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch members",
		})
	}

	return c.JSON(fiber.Map{
		"members": members,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetMember returns a specific member with their assignments
func (mc *MemberController) GetMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid member ID",
		})
	}

	var member models.Member
	if err := database.DB.Preload("MemberMemberships").Preload("MemberMemberships.Membership").
		First(&member, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Member not found",
		})
	}

	return c.JSON(fiber.Map{"member": member})
}

// CreateMember registers a new member and issues a unique member code
func (mc *MemberController) CreateMember(c *fiber.Ctx) error {
	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	code, err := mc.uniqueMemberCode()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate member code",
		})
	}

	member := models.Member{
		MemberCode: code,
		Name:       utils.SanitizeString(req.Name),
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
	}

	if err := database.DB.Create(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create member",
		})
	}

	middleware.LogActivity(c, "CREATE", "members", member.ID, member)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Member created successfully",
		"member":  member,
	})
}

// uniqueMemberCode retries generation until the code is unused.
func (mc *MemberController) uniqueMemberCode() (string, error) {
	for {
		code, err := utils.GenerateMemberCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := database.DB.Model(&models.Member{}).Where("member_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}

// UpdateMember updates an existing member's contact details. The member
// code is fixed at creation.
func (mc *MemberController) UpdateMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid member ID",
		})
	}

	var member models.Member
	if err := database.DB.First(&member, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Member not found",
		})
	}

	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	updates := map[string]interface{}{
		"name":    utils.SanitizeString(req.Name),
		"email":   req.Email,
		"phone":   req.Phone,
		"address": req.Address,
	}

	if err := database.DB.Model(&member).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update member",
		})
	}

	middleware.LogActivity(c, "UPDATE", "members", member.ID, updates)

	database.DB.First(&member, member.ID)
	return c.JSON(fiber.Map{
		"message": "Member updated successfully",
		"member":  member,
	})
}

// DeleteMember removes a member (owner/admin only)
func (mc *MemberController) DeleteMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid member ID",
		})
	}

	var member models.Member
	if err := database.DB.First(&member, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Member not found",
		})
	}

	if err := database.DB.Unscoped().Delete(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete member",
		})
	}

	middleware.LogActivity(c, "DELETE", "members", member.ID, fiber.Map{"member_code": member.MemberCode})

	return c.JSON(fiber.Map{"message": "Member deleted successfully"})
}

// UploadPhoto stores a member photo in S3 and saves the object key
func (mc *MemberController) UploadPhoto(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid member ID",
		})
	}

	var member models.Member
	if err := database.DB.First(&member, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Member not found",
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "photo file is required",
		})
	}

	allowed := strings.Split(config.AppConfig.AllowedExtensions, ",")
	if !utils.IsValidFileExtension(file.Filename, allowed) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File type not allowed",
		})
	}

	storageService, err := storage.NewStorageService()
	if err != nil {
		logrus.WithError(err).Error("Failed to init storage service")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Storage unavailable",
		})
	}

	key, err := storageService.UploadFile(file, "members", member.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := database.DB.Model(&member).Update("photo", key).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save photo",
		})
	}

	middleware.LogActivity(c, "UPDATE", "members", member.ID, fiber.Map{"photo": key})

	return c.JSON(fiber.Map{
		"message": "Photo uploaded successfully",
		"photo":   key,
	})
}

// PublicProfile returns the read-only view a member sees when scanning the
// code on their card: active assignments with remaining quota and expiry.
// Looked up by member code, never by numeric id, so URLs cannot be
// enumerated.
func (mc *MemberController) PublicProfile(c *fiber.Ctx) error {
	code := c.Params("code")
	if !utils.IsValidMemberCode(code) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Member not found",
		})
	}

	var member models.Member
	if err := database.DB.Where("member_code = ?", code).First(&member).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Member not found",
		})
	}

	var assignments []models.MemberMembership
	if err := database.DB.Preload("Member").Preload("Membership").
		Where("member_id = ?", member.ID).
		Order("created_at DESC").Find(&assignments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch memberships",
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
		"member": fiber.Map{
			"member_code": member.MemberCode,
			"name":        member.Name,
			"photo":       member.Photo,
			"since":       member.CreatedAt.Format(time.DateOnly),
		},
		"memberships": dtos,
	})
}
