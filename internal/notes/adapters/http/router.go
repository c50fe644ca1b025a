package http

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/middleware"
)

// SetupRouter настраивает маршрутизацию HTTP API.
func SetupRouter(app *fiber.App, handler *Handler, allowedOrigins []string) {
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
	}))

	app.Get("/health", handler.Health)

	notes := app.Group("/notes")
	notes.Get("/", handler.ListNotes)
	notes.Post("/", handler.CreateNote)
	notes.Get("/:id", handler.GetNote)
	notes.Patch("/:id", handler.UpdateNote)
	notes.Delete("/:id", handler.DeleteNote)
	notes.Get("/:id/tags", handler.ListNoteTags)
	notes.Post("/:id/tags", handler.TagNote)
	notes.Get("/:id/links", handler.ListLinks)
	notes.Get("/:id/rows", handler.ListRows)
	notes.Post("/:id/rows", handler.AddRow)

	app.Post("/links", handler.CreateLink)

	drafts := app.Group("/drafts")
	drafts.Get("/", handler.ListDrafts)
	drafts.Post("/", handler.CreateDraft)
	drafts.Get("/:id", handler.GetDraft)
	drafts.Delete("/:id", handler.DeleteDraft)

	tags := app.Group("/tags")
	tags.Get("/", handler.ListTags)
	tags.Post("/", handler.CreateTag)

	app.Post("/organize/:draft_id", handler.OrganizeDraft)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return detail(c, fiber.StatusNotFound, DetailRouteNotFound)
	})
}

// StructValidator проверяет тела, разобранные ctx.Bind(), правилами ozzo-validation.
type StructValidator struct{}

// Validate вызывает Validate() у DTO, если он его реализует.
func (StructValidator) Validate(out any) error {
	return validation.Validate(out)
}

// NewApp создает fiber-приложение с маршрутами API.
func NewApp(cfg fiber.Config, svc Services, allowedOrigins []string) *fiber.App {
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = ErrorHandler
	}
	if cfg.StructValidator == nil {
		cfg.StructValidator = StructValidator{}
	}
	app := fiber.New(cfg)
	SetupRouter(app, NewHandler(svc), allowedOrigins)
	return app
}
