package serverutils

import (
	"errors"

	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps error kinds onto HTTP statuses. InvalidState is a conflict:
// the request was well formed but the resource is not in a state that allows
// it. Storage failures are upstream trouble, not client mistakes.
func statusFor(k apperror.Kind) int {
	switch k {
	case apperror.KindUnauthorized:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInvalidState:
		return fiber.StatusConflict
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindStorage:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler builds the central fiber error handler. Services return
// domain errors; this is the single place they become HTTP responses.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var ae *apperror.Error
		if errors.As(err, &ae) {
			status := statusFor(ae.Kind)
			if status >= 500 {
				log.Error("HTTP", "Request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"error": err.Error(),
				})
			}
			return ctx.Status(status).JSON(ErrorResponse(ae.Kind.String(), ae.Error()))
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(ErrorResponse("HTTP_ERROR", fe.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("INTERNAL", "internal server error"))
	}
}
