package http

import (
	"github.com/gofiber/fiber/v3"

	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/dto"
	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/middleware"
)

// CreateLink создает связь между заметками.
func (h *Handler) CreateLink(ctx fiber.Ctx) error {
	var req dto.CreateLinkRequest
	if err := bindJSON(ctx, &req); err != nil {
		return handleError(ctx, err)
	}

	sourceID, targetID := req.IDs()
	link, err := h.links.CreateLink(middleware.RequestContext(ctx), sourceID, targetID, req.LinkType, req.ContextExcerpt)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(dto.NewNoteLinkResponse(link))
}

// ListLinks возвращает входящие и исходящие связи заметки.
func (h *Handler) ListLinks(ctx fiber.Ctx) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	links, err := h.links.ListLinks(middleware.RequestContext(ctx), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewNoteLinkResponses(links))
}
