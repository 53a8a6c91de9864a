package controller

import (
	"github.com/daohd2003/FRECS-sub006/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUser pulls the authenticated identity out of the JWT locals.
func currentUser(ctx *fiber.Ctx) (uuid.UUID, entity.UserRole) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	roleStr, _ := ctx.Locals("role").(string)
	return userId, entity.UserRole(roleStr)
}
