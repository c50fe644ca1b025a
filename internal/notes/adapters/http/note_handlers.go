package http

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/dto"
	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/middleware"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"
	LogHandlerAddRow     = "handling add row request"
	LogHandlerListRows   = "handling list rows request"
)

// ListNotes возвращает последние заметки.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListNotes, zap.String("handler", "Handler.ListNotes"))

	limit, err := queryLimit(ctx)
	if err != nil {
		return handleError(ctx, err)
	}

	notes, err := h.notes.ListNotes(requestCtx, limit)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewNoteResponses(notes))
}

// GetNote возвращает заметку по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetNote, zap.String("handler", "Handler.GetNote"))

	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}

	note, err := h.notes.GetNote(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewNoteResponse(note))
}

// CreateNote создает заметку.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCreateNote, zap.String("handler", "Handler.CreateNote"))

	var req dto.CreateNoteRequest
	if err := bindJSON(ctx, &req); err != nil {
		return handleError(ctx, err)
	}

	note, err := h.notes.CreateNote(requestCtx, *req.Title, req.ContentType, req.Body)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(dto.NewNoteResponse(note))
}

// UpdateNote частично обновляет заметку.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerUpdateNote, zap.String("handler", "Handler.UpdateNote"))

	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	req, err := dto.DecodeUpdateNote(ctx.Body())
	if err != nil {
		return handleError(ctx, err)
	}

	note, err := h.notes.UpdateNote(requestCtx, id, req.ToNoteUpdate())
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewNoteResponse(note))
}

// DeleteNote удаляет заметку.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteNote, zap.String("handler", "Handler.DeleteNote"))

	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	if err := h.notes.DeleteNote(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// AddRow добавляет строку в табличную заметку.
func (h *Handler) AddRow(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerAddRow, zap.String("handler", "Handler.AddRow"))

	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	var req dto.AddRowRequest
	if err := bindJSON(ctx, &req); err != nil {
		return handleError(ctx, err)
	}

	row, err := h.notes.AddRow(requestCtx, id, req.RowData)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(dto.NewTableRowResponse(row))
}

// ListRows возвращает строки табличной заметки.
func (h *Handler) ListRows(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListRows, zap.String("handler", "Handler.ListRows"))

	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}

	rows, err := h.notes.ListRows(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewTableRowResponses(rows))
}
