package utils

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"teamdock/apperr"
)

// RespondError maps a typed error onto the response verbatim. Anything else
// is reported to sentry and redacted behind the generic unknown-error payload.
func RespondError(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		sentry.CaptureException(err)
		appErr = apperr.Unknown()
	}
	return c.Status(appErr.Status).JSON(fiber.Map{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
