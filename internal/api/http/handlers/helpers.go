package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doctor-portal/internal/api/dto"
	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewMalformedRequest(name + " must be a positive integer")
	}
	return id, nil
}

// bindJSON parses and validates a request body.
func bindJSON(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewMalformedRequest("invalid payload")
	}
	return dto.Validate(req)
}

// parseQueryInt reads an optional integer query parameter. Absent means 0.
func parseQueryInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewMalformedRequest(name + " must be an integer")
	}
	return val, nil
}
