package serverutils

import (
	"errors"

	"notekeeper-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns service-layer errors into HTTP responses.
// This is the only place taxonomy kinds map to status codes.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperror.From(err); ok {
			return writeAppError(ctx, appErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Success: false,
				Code:    fiberErr.Code,
				Message: fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Success: false,
			Code:    fiber.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}

func writeAppError(ctx *fiber.Ctx, appErr *apperror.Error) error {
	status := fiber.StatusInternalServerError
	body := ErrorBody{Success: false, Message: appErr.Message, Errors: appErr.Fields}

	switch appErr.Kind {
	case apperror.KindValidation:
		status = fiber.StatusBadRequest
	case apperror.KindAuth:
		// 400 with a non-field error: credential failures and inactive
		// accounts share one shape so accounts cannot be enumerated.
		status = fiber.StatusBadRequest
		body.Errors = map[string][]string{"non_field_errors": {appErr.Message}}
	case apperror.KindConflict:
		status = fiber.StatusConflict
	case apperror.KindNotFound:
		status = fiber.StatusNotFound
	case apperror.KindPrecondition:
		status = fiber.StatusInternalServerError
	}

	body.Code = status
	return ctx.Status(status).JSON(body)
}
