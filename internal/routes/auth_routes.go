package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Wmolina17/backProjectUniversity/internal/controllers"
)

// SetupAuth registers the allow-listed routes: callers hit these to obtain
// a token, so they live outside the JWT gate.
func SetupAuth(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/register_user", controllers.Register)
	api.Post("/verify_user", controllers.VerifyUser)
	api.Post("/login", controllers.Login)
}
