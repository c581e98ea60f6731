package controllers

import (
	"errors"
	"strconv"

	"gymdesk_go/services"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam parses a positive numeric route parameter.
func parseIDParam(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// statusForServiceError maps engine/ledger failures to HTTP status codes.
// Domain refusals are 422 so clients can distinguish them from malformed
// requests; duplicate/closed-visit conflicts are 409; unknown ids are 404.
func statusForServiceError(err error) int {
	switch {
	case errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrMembershipNotFound),
		errors.Is(err, services.ErrAssignmentNotFound),
		errors.Is(err, services.ErrAttendanceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyCheckedIn),
		errors.Is(err, services.ErrNotCheckedIn),
		errors.Is(err, services.ErrMembershipHasAssignments):
		return fiber.StatusConflict
	}
	if _, ok := services.IsDomainError(err); ok {
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// respondServiceError writes the mapped status with the error message and,
// for typed domain errors, the stable machine-readable code.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := statusForServiceError(err)
	body := fiber.Map{"error": err.Error()}
	if de, ok := services.IsDomainError(err); ok {
		body["code"] = de.Code
	}
	if status == fiber.StatusInternalServerError {
		body["error"] = "Internal server error"
	}
	return c.Status(status).JSON(body)
}
