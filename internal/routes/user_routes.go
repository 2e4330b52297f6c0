package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Wmolina17/backProjectUniversity/internal/controllers"
)

func SetupRoutesUser(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/profile/:id", controllers.GetProfile)
	api.Put("/update_profile", controllers.UpdateProfile)
	api.Put("/update_email", controllers.UpdateEmail)
	api.Put("/update_password", controllers.UpdatePassword)
	api.Delete("/delete_account", controllers.DeleteAccount)
}
