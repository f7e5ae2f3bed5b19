package database

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetRequestDB returns the *gorm.DB handlers should use for this request.
// Prefer the per-request transaction installed by middlewares.Tx; fall back
// to the shared connection for read-only endpoints that run outside a TX.
func GetRequestDB(c *fiber.Ctx) (*gorm.DB, error) {
	if v := c.Locals("tx"); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx, nil
		}
	}
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	return DB, nil
}
