// @title Learning Platform API
// @version 1.0
// @description REST backend for the learning platform: accounts, Q&A, forums with realtime chat, and the shared resource library.
// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"os"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "github.com/Wmolina17/backProjectUniversity/docs"

	"github.com/Wmolina17/backProjectUniversity/bootstrap"
	"github.com/Wmolina17/backProjectUniversity/config"
	"github.com/Wmolina17/backProjectUniversity/database"
	"github.com/Wmolina17/backProjectUniversity/internal/chat"
	"github.com/Wmolina17/backProjectUniversity/internal/controllers"
	"github.com/Wmolina17/backProjectUniversity/internal/logging"
	"github.com/Wmolina17/backProjectUniversity/internal/middleware"
	"github.com/Wmolina17/backProjectUniversity/internal/routes"
	"github.com/Wmolina17/backProjectUniversity/internal/services"
)

func main() {
	if err := logging.Init(os.Getenv("APP_ENV") != "production"); err != nil {
		panic(err)
	}
	defer logging.Sync()

	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		logging.L().Fatal("JWT_SECRET is required")
	}
	controllers.InitAuth(cfg.JWTSecret)

	client := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	defer client.Disconnect(nil)

	if err := bootstrap.EnsureUserIndexes(database.DB); err != nil {
		logging.L().Fatal("ensure indexes failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	prometheus := fiberprometheus.New("learning_platform")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	app.Get("/docs/*", swagger.HandlerDefault)

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	// Token issuing routes stay outside the gate.
	routes.SetupAuth(app)

	// Chat sessions hold their connections outside the request cycle and
	// carry no Authorization header, so the endpoint registers pre-gate.
	hub := chat.NewHub()
	routes.SetupRoutesChat(app, hub)

	app.Use(middleware.JWTProtect(cfg.JWTSecret))

	assistant := &controllers.AssistantHandler{
		Svc: services.NewAssistantService(cfg.TogetherAPIKey, cfg.TogetherAPIURL),
	}

	routes.SetupRoutesUser(app)
	routes.SetupRoutesQuestion(app, assistant)
	routes.SetupRoutesForum(app)
	routes.SetupRoutesResource(app)

	logging.L().Fatal("server stopped", zap.Error(app.Listen(":"+cfg.Port)))
}
