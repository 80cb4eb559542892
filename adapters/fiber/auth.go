package fiber

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/lborres/stele/core"
)

const (
	invalidCredentialsFragment = `<div class="auth-inline color-fg-danger">Invalid credentials</div>`
	serverErrorFragment        = `<div class="auth-inline color-fg-danger">Server error</div>`

	loginFormFragment = `<div id="auth-slot">
  <form class="auth-inline d-flex flex-items-center gap-2"
        hx-post="/login"
        hx-target="#auth-slot"
        hx-swap="outerHTML">
    <input class="FormControl input size-small" name="username" placeholder="Username" required>
    <input class="FormControl input size-small" type="password" name="password" placeholder="Password" required>
    <button class="Button Button--primary size-small" type="submit">Login</button>
  </form>
</div>`
)

func loggedInFragment(username string) string {
	return fmt.Sprintf(`<div id="auth-slot" class="d-flex flex-items-center gap-2">
  <a href="/admin" class="text-bold" style="text-decoration: none; color: inherit;">Welcome, %s</a>
  <form hx-post="/logout" hx-target="#auth-slot" hx-swap="outerHTML">
    <button class="Button Button--invisible size-small" type="submit">Logout</button>
  </form>
</div>`, template.HTMLEscapeString(username))
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (h *Handler) login(c fiber.Ctx) error {
	form := loginForm{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		// Missing fields get the same generic failure as bad credentials
		return c.Status(http.StatusUnauthorized).Type("html").SendString(invalidCredentialsFragment)
	}

	result, err := h.auth.Login(c.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, core.ErrInvalidCredentials) {
			return c.Status(http.StatusUnauthorized).Type("html").SendString(invalidCredentialsFragment)
		}
		h.log.WithFields(logrus.Fields{"error": err.Error()}).Error("login failed")
		return c.Status(http.StatusInternalServerError).Type("html").SendString(serverErrorFragment)
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    result.Token,
		Expires:  result.Session.ExpiresAt,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Type("html").SendString(loggedInFragment(result.User.Username))
}

// logout always succeeds: the cookie is cleared and the logged-out
// fragment returned whether or not a matching session existed.
func (h *Handler) logout(c fiber.Ctx) error {
	token := c.Cookies(sessionCookie)

	if err := h.auth.Logout(c.Context(), token); err != nil {
		h.log.WithFields(logrus.Fields{"error": err.Error()}).Error("logout failed")
	}

	c.ClearCookie(sessionCookie)

	return c.Type("html").SendString(loginFormFragment)
}
