package errors

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/api/contract"
)

// ErrorHandler is the last resort: business failures never reach it because
// handlers fold them into the 200 acknowledgement body. Anything arriving
// here is a genuinely unhandled error.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return c.Status(fiber.StatusInternalServerError).JSON(contract.ErrorResponse{
			Success:   false,
			Error:     err.Error(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
