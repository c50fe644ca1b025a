package http

import (
	"github.com/gofiber/fiber/v3"

	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/dto"
	"github.com/avyukd/bobo-notes/internal/notes/adapters/http/middleware"
)

// ListTags возвращает все метки.
func (h *Handler) ListTags(ctx fiber.Ctx) error {
	tags, err := h.tags.ListTags(middleware.RequestContext(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewTagResponses(tags))
}

// CreateTag возвращает метку с заданным именем, создавая ее при необходимости.
func (h *Handler) CreateTag(ctx fiber.Ctx) error {
	req, err := dto.DecodeTag(ctx.Body())
	if err != nil {
		return handleError(ctx, err)
	}
	tag, err := h.tags.CreateTag(middleware.RequestContext(ctx), req.Name)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewTagResponse(tag))
}

// ListNoteTags возвращает метки заметки.
func (h *Handler) ListNoteTags(ctx fiber.Ctx) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	tags, err := h.tags.ListNoteTags(middleware.RequestContext(ctx), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewTagResponses(tags))
}

// TagNote навешивает метку на заметку.
func (h *Handler) TagNote(ctx fiber.Ctx) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	req, err := dto.DecodeTag(ctx.Body())
	if err != nil {
		return handleError(ctx, err)
	}
	tag, err := h.tags.TagNote(middleware.RequestContext(ctx), id, req.Name)
	if err != nil {
		return handleError(ctx, err)
	}
	return ctx.JSON(dto.NewTagResponse(tag))
}
