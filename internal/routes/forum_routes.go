package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Wmolina17/backProjectUniversity/internal/chat"
	"github.com/Wmolina17/backProjectUniversity/internal/controllers"
)

func SetupRoutesForum(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/forum", controllers.ListForums)
	api.Get("/popular_forum", controllers.ListPopularForums)
	api.Post("/forum", controllers.CreateForum)
	api.Post("/forum/add_user", controllers.AddForumMember)
	api.Post("/forum/remove_user", controllers.RemoveForumMember)
	api.Post("/forum/remove_forum", controllers.DeleteForum)
	api.Put("/forum/:id", controllers.UpdateForum)
}

// SetupRoutesChat wires the realtime endpoint. Registered before the JWT
// gate: websocket upgrades carry no Authorization header, mirroring how
// the chat channel sits outside the request/response cycle.
func SetupRoutesChat(app *fiber.App, hub *chat.Hub) {
	app.Use("/ws/:forumId", chat.UpgradeRequired)
	app.Get("/ws/:forumId", chat.ForumSocket(hub))
}
