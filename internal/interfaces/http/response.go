package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

const msgInternal = "Internal server error"

// statusFor traduce un error de dominio a status HTTP y mensaje público.
// El detalle envuelto nunca sale al cliente.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, domain.ErrValidation.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusBadRequest, domain.ErrConflict.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrUpload):
		return fiber.StatusInternalServerError, domain.ErrUpload.Error()
	case errors.Is(err, domain.ErrPersistence):
		return fiber.StatusInternalServerError, domain.ErrPersistence.Error()
	default:
		return fiber.StatusInternalServerError, msgInternal
	}
}

func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, msg := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error en petición")
	}
	return c.Status(status).JSON(dto.Fail(msg))
}

// ErrorHandler reemplaza el handler por defecto de Fiber para que 404, 405, body demasiado
// grande y panics recuperados también respondan con el envelope.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.Fail(fe.Message))
		}
		return writeError(c, log, err)
	}
}
