// Package http содержит HTTP API сервиса заметок.
package http

import (
	"bytes"
	"errors"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/dto"
	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/middleware"
	"github.com/avyukd/bobo-notes/internal/notes/app"
	"github.com/avyukd/bobo-notes/internal/notes/ports/services"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

// Тексты ответов с ошибками.
const (
	DetailNoteNotFound   = "Note not found"
	DetailDraftNotFound  = "Draft not found"
	DetailNotFound       = "Not found"
	DetailInternalError  = "Internal server error"
	DetailInvalidID      = "invalid id: must be a UUID"
	DetailInvalidLimit   = "limit must be an integer"
	DetailMalformedJSON  = "malformed JSON body"
	DetailRouteNotFound  = "Route not found"
	LogRequestFailed     = "request failed"
	LogRequestIncomplete = "request rejected"
)

// Services сценарии, которые обслуживает HTTP API.
type Services struct {
	Notes     services.NoteService
	Drafts    services.DraftService
	Tags      services.TagService
	Links     services.LinkService
	Organizer services.DraftOrganizer
}

// Handler обработчик HTTP-запросов сервиса заметок.
type Handler struct {
	notes     services.NoteService
	drafts    services.DraftService
	tags      services.TagService
	links     services.LinkService
	organizer services.DraftOrganizer
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(svc Services) *Handler {
	return &Handler{
		notes:     svc.Notes,
		drafts:    svc.Drafts,
		tags:      svc.Tags,
		links:     svc.Links,
		organizer: svc.Organizer,
	}
}

// Health сообщает, что процесс жив.
func (h *Handler) Health(ctx fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func detail(ctx fiber.Ctx, status int, value any) error {
	return ctx.Status(status).JSON(fiber.Map{"detail": value})
}

func pathID(ctx fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, validation.Errors{name: errors.New(DetailInvalidID)}
	}
	return id, nil
}

func queryLimit(ctx fiber.Ctx) (int, error) {
	raw := ctx.Query("limit")
	if raw == "" {
		return app.DefaultNoteLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.Errors{"limit": errors.New(DetailInvalidLimit)}
	}
	return limit, nil
}

// bindJSON разбирает тело запроса в out через fiber Bind. Проверка out
// выполняется валидатором приложения.
func bindJSON(ctx fiber.Ctx, out any) error {
	if len(bytes.TrimSpace(ctx.Body())) == 0 {
		return dto.MissingBody()
	}
	return dto.BindError(ctx.Bind().WithoutAutoHandling().JSON(out))
}

// handleError переводит ошибку сценария в HTTP-ответ.
func handleError(ctx fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("path", ctx.Path()))

	var verrs validation.Errors
	switch {
	case errors.Is(err, app.ErrNoteNotFound):
		return detail(ctx, fiber.StatusNotFound, DetailNoteNotFound)
	case errors.Is(err, app.ErrDraftNotFound):
		return detail(ctx, fiber.StatusNotFound, DetailDraftNotFound)
	case errors.Is(err, app.ErrNotFound):
		return detail(ctx, fiber.StatusNotFound, DetailNotFound)
	case errors.As(err, &verrs):
		log.Debug(requestCtx, LogRequestIncomplete, zap.Error(err))
		return detail(ctx, fiber.StatusUnprocessableEntity, verrs)
	case errors.Is(err, app.ErrInvalidParams):
		log.Debug(requestCtx, LogRequestIncomplete, zap.Error(err))
		return detail(ctx, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, dto.ErrMalformedJSON):
		log.Debug(requestCtx, LogRequestIncomplete, zap.Error(err))
		return detail(ctx, fiber.StatusBadRequest, DetailMalformedJSON)
	default:
		log.Error(requestCtx, LogRequestFailed, zap.Error(err))
		return detail(ctx, fiber.StatusInternalServerError, DetailInternalError)
	}
}

// ErrorHandler отвечает на ошибки, дошедшие до fiber, в том же формате {"detail": ...}.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return detail(ctx, fiberErr.Code, fiberErr.Message)
	}
	return handleError(ctx, err)
}
