// Package fiber exposes the application over HTTP. Every response body
// is an HTML fragment consumed by an HTMX front end; errors never leak
// beyond a short generic snippet.
package fiber

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/lborres/stele/core"
	"github.com/lborres/stele/services"
)

const sessionCookie = "session_token"

type Handler struct {
	auth    *services.AuthService
	content *services.ContentService
	reader  core.ContentReader
	log     *logrus.Logger

	// secureCookies turns on the Secure flag; enabled in production.
	secureCookies bool
}

func New(auth *services.AuthService, content *services.ContentService, reader core.ContentReader, log *logrus.Logger, secureCookies bool) *Handler {
	return &Handler{
		auth:          auth,
		content:       content,
		reader:        reader,
		log:           log,
		secureCookies: secureCookies,
	}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	// Public routes
	app.Post("/login", h.login)
	app.Post("/logout", h.logout)

	app.Get("/partials/tokens", h.tokensPartial)
	app.Get("/partials/profile", h.profilePartial)
	app.Get("/partials/events", h.eventsPartial)
	app.Get("/partials/feed", h.feedPartial)

	// Protected routes
	admin := app.Group("/admin", h.requireAuth)
	admin.Post("/settings", h.saveSettings)
	admin.Post("/profile", h.saveProfile)
	admin.Post("/posts", h.createPost)
	admin.Post("/events/bulk", h.saveEventsBulk)

	adminPartials := app.Group("/partials/admin", h.requireAuth)
	adminPartials.Get("/posts-list", h.adminPostsList)
}
