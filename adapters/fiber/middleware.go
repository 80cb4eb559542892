package fiber

import (
	"github.com/gofiber/fiber/v3"
)

// requireAuth gates protected routes on the session cookie. Any denial
// (no cookie, unknown token, expired session) redirects to the
// unauthenticated entry point instead of returning an error body.
func (h *Handler) requireAuth(c fiber.Ctx) error {
	token := c.Cookies(sessionCookie)
	if token == "" {
		return c.Redirect().To("/")
	}

	session, err := h.auth.Authorize(c.Context(), token)
	if err != nil {
		return c.Redirect().To("/")
	}

	// Bind the resolved session to this request only
	c.Locals("session", session)

	return c.Next()
}
