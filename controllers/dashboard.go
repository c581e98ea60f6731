package controllers

import (
	"context"
	"encoding/json"
	"time"

	"gymdesk_go/database"
	"gymdesk_go/middleware"
	"gymdesk_go/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DashboardController struct{}

// GetStats aggregates the front-desk dashboard numbers. Counts come from
// live queries (status alone can lag behind expiry, so expiring-soon uses
// expired_at, not status history). Revenue is owner-only.
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	claims, _ := c.Locals("claims").(*middleware.Claims)
	role := ""
	if claims != nil {
		role = claims.Role
	}

	cacheKey := "dashboard:stats:" + role
	if cached := readStatsCache(cacheKey); cached != nil {
		return c.JSON(fiber.Map{"stats": cached, "cached": true})
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	todayStart := startOfToday()
	weekAhead := now.AddDate(0, 0, 7)

	var totalMembers, newThisMonth int64
	database.DB.Model(&models.Member{}).Count(&totalMembers)
	database.DB.Model(&models.Member{}).Where("created_at >= ?", monthStart).Count(&newThisMonth)

	var activeAssignments, expiringSoon int64
	database.DB.Model(&models.MemberMembership{}).
		Where("status = ?", models.AssignmentStatusActive).Count(&activeAssignments)
	database.DB.Model(&models.MemberMembership{}).
		Where("status = ? AND expired_at > ? AND expired_at <= ?", models.AssignmentStatusActive, now, weekAhead).
		Count(&expiringSoon)

	var visitsToday, currentlyIn int64
	database.DB.Model(&models.Attendance{}).
		Where("check_in_at >= ?", todayStart).Count(&visitsToday)
	database.DB.Model(&models.Attendance{}).
		Where("check_in_at >= ? AND check_out_at IS NULL", todayStart).Count(&currentlyIn)

	stats := fiber.Map{
		"members": fiber.Map{
			"total":          totalMembers,
			"new_this_month": newThisMonth,
		},
		"memberships": fiber.Map{
			"active":        activeAssignments,
			"expiring_soon": expiringSoon,
		},
		"attendances": fiber.Map{
			"today":        visitsToday,
			"currently_in": currentlyIn,
		},
	}

	// Revenue figures are snapshot prices summed at sale time, gated to owner
	if role == "owner" {
		var totalRevenue, monthRevenue float64
		database.DB.Model(&models.MemberMembership{}).
			Select("COALESCE(SUM(snapshot_price), 0)").Scan(&totalRevenue)
		database.DB.Model(&models.MemberMembership{}).
			Where("created_at >= ?", monthStart).
			Select("COALESCE(SUM(snapshot_price), 0)").Scan(&monthRevenue)

		stats["revenue"] = fiber.Map{
			"total":      totalRevenue,
			"this_month": monthRevenue,
		}

		var totalUsers int64
		database.DB.Model(&models.User{}).Count(&totalUsers)
		stats["users"] = fiber.Map{"total": totalUsers}
	}

	writeStatsCache(cacheKey, stats)

	return c.JSON(fiber.Map{"stats": stats})
}

// readStatsCache returns cached stats or nil. Cache misses and Redis
// outages both fall through to live queries.
func readStatsCache(key string) fiber.Map {
	rc := database.GetRedisClient()
	if rc == nil {
		return nil
	}
	raw, err := rc.Get(context.Background(), key).Result()
	if err != nil {
		return nil
	}
	var stats fiber.Map
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil
	}
	return stats
}

func writeStatsCache(key string, stats fiber.Map) {
	rc := database.GetRedisClient()
	if rc == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := rc.Set(context.Background(), key, data, 30*time.Second).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to cache dashboard stats")
	}
}
