package http

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/dto"
	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/middleware"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

// ListDrafts возвращает все черновики.
func (h *Handler) ListDrafts(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	drafts, err := h.drafts.ListDrafts(requestCtx)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewDraftResponses(drafts))
}

// GetDraft возвращает черновик по ID.
func (h *Handler) GetDraft(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	draft, err := h.drafts.GetDraft(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewDraftResponse(draft))
}

// CreateDraft создает черновик.
func (h *Handler) CreateDraft(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	var req dto.CreateDraftRequest
	if err := bindJSON(ctx, &req); err != nil {
		return handleError(ctx, err)
	}
	draft, err := h.drafts.CreateDraft(requestCtx, req.Title, req.Body)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(dto.NewDraftResponse(draft))
}

// DeleteDraft удаляет черновик.
func (h *Handler) DeleteDraft(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	if err := h.drafts.DeleteDraft(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// OrganizeDraft превращает черновик в markdown-заметку.
func (h *Handler) OrganizeDraft(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.OrganizeDraft"))

	id, err := pathID(ctx, "draft_id")
	if err != nil {
		return handleError(ctx, err)
	}

	note, err := h.organizer.OrganizeDraft(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}

	log.Info(requestCtx, "draft organized", zap.Stringer("draftID", id), zap.Stringer("noteID", note.ID))
	return ctx.JSON(dto.NewNoteResponse(note))
}
