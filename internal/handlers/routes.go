package handlers

import (
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type AppOptions struct {
	AllowOrigins []string
	AccessLog    bool
}

// NewApp creates the fiber app with middleware and routes. history may be nil,
// in which case the history endpoints are not registered.
func NewApp(opts AppOptions, classify *ClassifyHandler, health *HealthHandler, history *HistoryHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Occupation Classifier API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    64 * 1024,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	// fiber rejects credentials together with a wildcard origin
	allowCredentials := len(opts.AllowOrigins) > 0 && !slices.Contains(opts.AllowOrigins, "*")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(opts.AllowOrigins, ","),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: allowCredentials,
	}))

	app.Get("/", health.HandleRoot)

	api := app.Group("/api")
	api.Get("/health", health.HandleHealth)
	api.Post("/classify", classify.HandleClassify)

	if history != nil {
		api.Get("/classifications", history.HandleListClassifications)
		api.Get("/classifications/:id", history.HandleGetClassification)
	}

	return app
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return errorJSON(c, code, err.Error())
}
