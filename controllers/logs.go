package controllers

import (
	"strconv"
	"time"

	"gymdesk_go/database"
	"gymdesk_go/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LogController struct{}

// GetLogs retrieves paginated activity logs with filters
func (lc *LogController) GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.ActivityLog{}).Preload("User")

	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if resource := c.Query("resource"); resource != "" {
		query = query.Where("resource = ?", resource)
	}

	if startDate := c.Query("start_date"); startDate != "" {
		if parsedDate, err := time.Parse(time.DateOnly, startDate); err == nil {
			query = query.Where("created_at >= ?", parsedDate)
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if parsedDate, err := time.Parse(time.DateOnly, endDate); err == nil {
			query = query.Where("created_at <= ?", parsedDate.Add(24*time.Hour))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("Failed to count activity logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve logs count",
		})
	}

	var activityLogs []models.ActivityLog
	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&activityLogs).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch activity logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve logs",
		})
	}

	return c.JSON(fiber.Map{
		"logs": activityLogs,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetLogStats returns aggregate counters for the log dashboard widgets
func (lc *LogController) GetLogStats(c *fiber.Ctx) error {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var total, totalToday, totalThisMonth int64
	database.DB.Model(&models.ActivityLog{}).Count(&total)
	database.DB.Model(&models.ActivityLog{}).Where("created_at >= ?", startOfDay).Count(&totalToday)
	database.DB.Model(&models.ActivityLog{}).Where("created_at >= ?", startOfMonth).Count(&totalThisMonth)

	type actionCount struct {
		Action string
		Count  int64
	}
	var actions []actionCount
	database.DB.Model(&models.ActivityLog{}).
		Select("action, COUNT(*) as count").
		Group("action").
		Scan(&actions)

	breakdown := make(map[string]int64, len(actions))
	for _, a := range actions {
		breakdown[a.Action] = a.Count
	}

	return c.JSON(fiber.Map{
		"total":            total,
		"total_today":      totalToday,
		"total_this_month": totalThisMonth,
		"action_breakdown": breakdown,
	})
}

// GetLogArchives lists archive records created by the log maintenance job
func (lc *LogController) GetLogArchives(c *fiber.Ctx) error {
	var archives []models.LogArchive
	if err := database.DB.Order("created_at DESC").Limit(100).Find(&archives).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve log archives",
		})
	}
	return c.JSON(fiber.Map{"archives": archives})
}
