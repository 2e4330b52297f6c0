package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Wmolina17/backProjectUniversity/internal/controllers"
)

func SetupRoutesResource(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/resources", controllers.ListResources)
	api.Post("/resources", controllers.CreateResource)

	// save/unsave before the :id routes so the static segment wins.
	api.Put("/resources/save/:id/:userId", controllers.SaveResource)
	api.Put("/resources/unsave/:id/:userId", controllers.UnsaveResource)
	api.Put("/resources/:id/view", controllers.RecordResourceView)

	api.Get("/resources/:userId", controllers.ListResourcesByUser)
	api.Put("/resources/:id", controllers.UpdateResource)
	api.Delete("/resources/:id", controllers.DeleteResource)
}
