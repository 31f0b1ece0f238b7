package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sreaderapp/sreader-server/internal/authctx"
	"github.com/sreaderapp/sreader-server/internal/dto"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

// TeacherRequired allows only users carrying the TEACHER (or ADMIN) role.
// Roles are checked against the database, not just the token, so a role
// change takes effect without waiting for token expiry.
func TeacherRequired(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authctx.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		user, err := users.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !user.Roles.Has(models.RoleTeacher) && !user.Roles.Has(models.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Teacher access required",
			})
		}

		return c.Next()
	}
}
