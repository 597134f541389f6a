package api

import (
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"organizer-service/internal/upload"
)

const bodyLimit = upload.MaxFileSize + 1024*1024

type RouterConfig struct {
	ServiceName string
	UploadStore upload.Store
	// UploadDir is served under /uploads when images are kept on local disk.
	UploadDir string
	PublicDir string
}

// NewApp builds the fiber app with the middleware shared by every route.
func NewApp(serviceName string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   serviceName,
		BodyLimit: bodyLimit,
	})

	app.Use(otelfiber.Middleware())
	app.Use(PrometheusMiddleware())
	app.Use(RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	return app
}

func SetupRoutes(app *fiber.App, users *UserHandler, events *EventHandler, cfg RouterConfig) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.ServiceName})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	imageUpload := upload.Single("image", cfg.UploadStore)

	organizer := app.Group("/api/organizer")
	organizer.Post("/create-user", users.CreateUser)
	organizer.Get("/get-all-users", users.GetAllUsers)
	organizer.Post("/login", users.Login)
	organizer.Post("/create-event", imageUpload, events.CreateEvent)

	// Route names used by existing clients.
	organizer.Post("/createUser", users.CreateUser)
	organizer.Get("/getAllUsers", users.GetAllUsers)
	organizer.Post("/createEvent", imageUpload, events.CreateEvent)

	if cfg.UploadDir != "" {
		app.Static("/uploads", cfg.UploadDir)
	}
	if cfg.PublicDir != "" {
		app.Static("/", cfg.PublicDir)
	}
}
