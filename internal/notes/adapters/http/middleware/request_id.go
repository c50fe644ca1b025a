// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/avyukd/bobo-notes/pkg/logger"
)

// RequestContextKey ключ Locals, под которым хранится контекст запроса.
const RequestContextKey = "requestContext"

// NewRequestIDMiddleware сохраняет request id в контексте запроса и возвращает его в заголовке ответа.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(logger.RequestIDHeader))
		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(logger.RequestIDHeader, id)
		}
		ctx.Locals(RequestContextKey, requestCtx)
		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с request id.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(RequestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
