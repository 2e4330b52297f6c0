package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Wmolina17/backProjectUniversity/internal/controllers"
)

func SetupRoutesQuestion(app *fiber.App, assistant *controllers.AssistantHandler) {
	api := app.Group("/api")

	api.Get("/questions", controllers.ListQuestions)
	api.Get("/basic_list_questions", controllers.ListBasicQuestions)
	api.Post("/add_question", controllers.CreateQuestion)

	// Static segments before the :id catch-all.
	api.Get("/questions/user/:userId", controllers.ListQuestionsByUser)
	api.Put("/questions/add_answer/:id", controllers.AddAnswer)
	api.Post("/questions/answer/likeordeslike", controllers.VoteAnswer)

	api.Get("/questions/:id", controllers.GetQuestion)
	api.Put("/questions/:id", controllers.UpdateQuestion)
	api.Delete("/questions/:id", controllers.DeleteQuestion)

	api.Post("/ask_ia", assistant.Ask)
}
