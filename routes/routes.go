package routes

import (
	"github.com/gofiber/fiber/v2"

	"orient-classics-backend/controllers"
	"orient-classics-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Idempotency guard FIRST (not tied to request TX)
	api.Use(middlewares.Idempotency())

	// Then per-request transaction for mutating methods
	api.Use(middlewares.Tx())

	// Works
	api.Post("/work", controllers.CreateWork)
	api.Get("/works", controllers.GetWorks)
	api.Get("/work/:id", controllers.GetWork)
	api.Put("/work/:id", controllers.UpdateWork)
	api.Delete("/work/:id", controllers.DeleteWork)

	// Translators
	api.Post("/translator", controllers.CreateTranslator)
	api.Get("/translators", controllers.GetTranslators)
	api.Get("/translator/:id", controllers.GetTranslator)
	api.Put("/translator/:id", controllers.UpdateTranslator)
	api.Delete("/translator/:id", controllers.DeleteTranslator)

	// Contract templates (rich text + uploaded word files)
	api.Post("/contract-template", controllers.CreateTemplate)
	api.Get("/contract-templates", controllers.GetTemplates)
	api.Get("/contract-template/:id", controllers.GetTemplate)
	api.Get("/contract-template/:id/file", controllers.DownloadTemplateFile)
	api.Put("/contract-template/:id", controllers.UpdateTemplate)
	api.Delete("/contract-template/:id", controllers.DeleteTemplate)

	// Contracts (server-side financial cascade + document generation)
	api.Post("/contract", controllers.CreateContract)
	api.Get("/contracts", controllers.GetContracts)
	api.Post("/contract/preview", controllers.PreviewContract)
	api.Get("/contract/:id", controllers.GetContract)
	api.Put("/contract/:id", controllers.UpdateContract)
	api.Delete("/contract/:id", controllers.DeleteContract)
	api.Get("/contract/:id/estimate", controllers.EstimateContract)
	api.Post("/contract/:id/document", controllers.GenerateContractDocument)
}
