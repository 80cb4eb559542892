package fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/lborres/stele/core"
)

const (
	settingsSavedFragment = `<span class="color-fg-muted">Saved ✓</span>`
	settingsErrorFragment = `<span class="color-fg-danger">Error saving settings</span>`

	profileSavedFragment = `<span class="color-fg-muted">Profile saved ✓</span>`
	profileErrorFragment = `<span class="color-fg-danger">Error saving profile</span>`

	postCreatedFragment = `<span class="color-fg-muted">Post created ✓</span>`
	postErrorFragment   = `<span class="color-fg-danger">Error creating post</span>`

	eventsSavedFragment = `<span class="color-fg-muted">Events saved ✓</span>`
	eventsErrorFragment = `<span class="color-fg-danger">Error saving events</span>`
)

func (h *Handler) saveSettings(c fiber.Ctx) error {
	batch := parseSettingsForm(postForm(c))

	if err := h.content.SaveSettings(c.Context(), batch); err != nil {
		h.log.WithFields(logrus.Fields{"error": err.Error()}).Error("save settings failed")
		return c.Status(http.StatusInternalServerError).Type("html").SendString(settingsErrorFragment)
	}

	return c.Type("html").SendString(settingsSavedFragment)
}

func (h *Handler) saveProfile(c fiber.Ctx) error {
	update := parseProfileForm(postForm(c))

	if err := h.content.SaveProfile(c.Context(), update); err != nil {
		h.log.WithFields(logrus.Fields{"error": err.Error()}).Error("save profile failed")
		return c.Status(http.StatusInternalServerError).Type("html").SendString(profileErrorFragment)
	}

	return c.Type("html").SendString(profileSavedFragment)
}

func (h *Handler) createPost(c fiber.Ctx) error {
	session, ok := c.Locals("session").(*core.Session)
	if !ok {
		return c.Redirect().To("/")
	}

	input := parsePostForm(postForm(c))
	if err := validate.Struct(postFormBody{Content: input.Content}); err != nil {
		return c.Status(http.StatusBadRequest).Type("html").SendString(postErrorFragment)
	}

	if err := h.content.CreatePost(c.Context(), session.UserID, input); err != nil {
		h.log.WithFields(logrus.Fields{"error": err.Error()}).Error("create post failed")
		return c.Status(http.StatusInternalServerError).Type("html").SendString(postErrorFragment)
	}

	return c.Type("html").SendString(postCreatedFragment)
}

func (h *Handler) saveEventsBulk(c fiber.Ctx) error {
	events := parseEventsForm(postForm(c))

	for _, e := range events {
		if err := validate.Struct(eventFormRow{Date: e.Date, Title: e.Title}); err != nil {
			return c.Status(http.StatusBadRequest).Type("html").SendString(eventsErrorFragment)
		}
	}

	if err := h.content.SaveEvents(c.Context(), events); err != nil {
		h.log.WithFields(logrus.Fields{"error": err.Error()}).Error("save events failed")
		return c.Status(http.StatusInternalServerError).Type("html").SendString(eventsErrorFragment)
	}

	return c.Type("html").SendString(eventsSavedFragment)
}
