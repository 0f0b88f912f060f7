package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"mart/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// writeError maps a service error onto the shared {code, message} envelope.
// Not-found conditions are 404, business-rule failures 400, collaborator
// failures 502, anything unrecognized 500.
func writeError(c *fiber.Ctx, err error) error {
	var (
		stockErr      *apperrors.InsufficientStockError
		transitionErr *apperrors.InvalidTransitionError
		validationErr *apperrors.ValidationError
		upstreamErr   *apperrors.UpstreamError
	)

	switch {
	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(apperrors.Response{
			Code:    apperrors.CodeNotFound,
			Message: err.Error(),
		})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Response{
			Code:      apperrors.CodeInsufficientStock,
			Message:   stockErr.Error(),
			Product:   stockErr.Product,
			Available: &stockErr.Available,
			Requested: &stockErr.Requested,
		})
	case errors.As(err, &transitionErr):
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Response{
			Code:    apperrors.CodeInvalidTransition,
			Message: transitionErr.Error(),
		})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Response{
			Code:    apperrors.CodeValidationFailed,
			Message: validationErr.Error(),
		})
	case errors.Is(err, apperrors.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Response{
			Code:    apperrors.CodeEmailTaken,
			Message: err.Error(),
		})
	case errors.As(err, &upstreamErr):
		return c.Status(fiber.StatusBadGateway).JSON(apperrors.Response{
			Code:    apperrors.CodeUpstreamFailure,
			Message: upstreamErr.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(apperrors.Response{
			Code:    apperrors.CodeInternal,
			Message: err.Error(),
		})
	}
}

// writeValidationErrors reports struct-tag validation failures field by field.
func writeValidationErrors(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"code":    apperrors.CodeValidationFailed,
		"message": "validation failed",
		"errors":  errorMessages,
	})
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, &apperrors.ValidationError{Msg: fmt.Sprintf("invalid %s: %s", name, c.Params(name))}
	}
	return uint(id), nil
}
