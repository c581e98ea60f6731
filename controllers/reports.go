package controllers

import (
	"fmt"
	"time"

	"gymdesk_go/database"
	"gymdesk_go/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ReportController exports attendance history for a date range as .xlsx.
type ReportController struct{}

var attendanceReportHeader = []string{
	"Attendance ID", "Member", "Membership", "Remaining Before",
	"Check-in", "Check-out", "Duration (min)", "Recorded By", "Notes",
}

// ExportAttendances streams an xlsx of visits between from and to
// (inclusive, local dates, default last 30 days).
func (rc *ReportController) ExportAttendances(c *fiber.Ctx) error {
	to := startOfToday().AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -31)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from date (YYYY-MM-DD)"})
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to date (YYYY-MM-DD)"})
		}
		to = parsed.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be before to"})
	}

	var attendances []models.Attendance
	if err := database.DB.
		Where("check_in_at >= ? AND check_in_at < ?", from, to).
		Order("check_in_at ASC").Find(&attendances).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch attendances",
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendances"
	f.SetSheetName("Sheet1", sheet)

	for i, title := range attendanceReportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for i, a := range attendances {
		row := i + 2
		checkOut := ""
		duration := ""
		if a.CheckOutAt != nil {
			checkOut = a.CheckOutAt.Format(time.DateTime)
			duration = fmt.Sprintf("%d", *a.DurationMinutes())
		}
		remaining := "unlimited"
		if a.SnapshotRemainingBefore != nil {
			remaining = fmt.Sprintf("%d", *a.SnapshotRemainingBefore)
		}

		values := []interface{}{
			a.ID, a.SnapshotMemberName, a.SnapshotMembershipName, remaining,
			a.CheckInAt.Format(time.DateTime), checkOut, duration,
			a.SnapshotRecordedByName, a.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build report",
		})
	}

	filename := fmt.Sprintf("attendances_%s_%s.xlsx",
		from.Format(time.DateOnly), to.AddDate(0, 0, -1).Format(time.DateOnly))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
