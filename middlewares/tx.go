package middlewares

import (
	"log"

	"orient-classics-backend/database"

	"github.com/gofiber/fiber/v2"
)

// Tx opens a per-request DB transaction for mutating methods. Run AFTER
// Idempotency() so idempotency records are not tied to the handler TX.
// Read-only methods skip the TX and use the shared connection.
func Tx() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return c.Next()
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to begin transaction")
		}

		// Ensure we always cleanup.
		defer func() {
			if r := recover(); r != nil {
				_ = tx.Rollback()
				panic(r) // re-panic after rollback so Fiber's handler can catch
			}
			if err != nil {
				_ = tx.Rollback()
				return
			}
			if e := tx.Commit().Error; e != nil {
				log.Printf("tx commit failed: %v", e)
				err = fiber.NewError(fiber.StatusInternalServerError, "transaction commit failed")
			}
		}()

		// Make the TX available to handlers via GetRequestDB(c).
		c.Locals("tx", tx)

		err = c.Next()
		return err
	}
}
