package fiber

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/lborres/stele/core"
)

const partialErrorFragment = `<div class="color-fg-danger">Unavailable</div>`

func (h *Handler) partialError(c fiber.Ctx, msg string, err error) error {
	h.log.WithFields(logrus.Fields{"error": err.Error()}).Error(msg)
	return c.Status(http.StatusInternalServerError).Type("html").SendString(partialErrorFragment)
}

// cssVarName maps a settings key to the CSS custom property the
// stylesheet consumes: color.* keeps its group as a --color- prefix,
// spacing.* and layout.* drop theirs.
func cssVarName(key string) string {
	switch {
	case strings.HasPrefix(key, "color."):
		return "--color-" + strings.TrimPrefix(key, "color.")
	case strings.HasPrefix(key, "spacing."):
		return "--" + strings.TrimPrefix(key, "spacing.")
	case strings.HasPrefix(key, "layout."):
		return "--" + strings.TrimPrefix(key, "layout.")
	}
	return key
}

// tokensPartial renders every stored setting as a CSS variable inside a
// :root style block.
func (h *Handler) tokensPartial(c fiber.Ctx) error {
	entries, err := h.reader.ListSettings(c.Context())
	if err != nil {
		return h.partialError(c, "list settings failed", err)
	}

	var b strings.Builder
	b.WriteString("<style>:root{\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "  %s: %s;\n", cssVarName(e.Key), template.HTMLEscapeString(e.Value))
	}
	b.WriteString("}</style>")

	return c.Type("html").SendString(b.String())
}

func (h *Handler) profilePartial(c fiber.Ctx) error {
	profile, err := h.reader.GetProfile(c.Context())
	if err != nil {
		if errors.Is(err, core.ErrProfileNotFound) {
			return c.Type("html").SendString(`<div class="p-3 color-fg-muted">No profile configured.</div>`)
		}
		return h.partialError(c, "load profile failed", err)
	}

	links, err := h.reader.ListSocialLinks(c.Context(), profile.ID)
	if err != nil {
		return h.partialError(c, "list social links failed", err)
	}

	var b strings.Builder
	b.WriteString(`<div class="Card profile-card d-flex">` + "\n")
	fmt.Fprintf(&b, `  <div class="profile-media"><img src="%s" alt="Profile portrait"></div>`+"\n",
		template.HTMLEscapeString(profile.ImageURL))
	b.WriteString(`  <div class="profile-body">` + "\n")
	fmt.Fprintf(&b, `    <h2 class="f2 text-semibold">%s</h2>`+"\n", template.HTMLEscapeString(profile.Name))
	fmt.Fprintf(&b, `    <p class="color-fg-muted">%s</p>`+"\n", template.HTMLEscapeString(profile.Bio))
	b.WriteString(`    <nav class="social-links d-flex flex-wrap gap-2">` + "\n")
	for _, l := range links {
		href := l.URL
		if href == "" {
			href = "#"
		}
		fmt.Fprintf(&b, `      <a class="Button Button--invisible" href="%s">%s</a>`+"\n",
			template.HTMLEscapeString(href), template.HTMLEscapeString(l.Label))
	}
	b.WriteString("    </nav>\n  </div>\n</div>")

	return c.Type("html").SendString(b.String())
}

// eventDayMonth splits a YYYY-MM-DD date into its calendar-tile day and
// month numbers.
func eventDayMonth(dateISO string) (day, month string) {
	if len(dateISO) != len("2006-01-02") {
		return "", ""
	}
	return dateISO[8:10], dateISO[5:7]
}

// eventsPartial renders events on or after today, soonest first.
func (h *Handler) eventsPartial(c fiber.Ctx) error {
	today := time.Now().Format("2006-01-02")
	events, err := h.reader.ListUpcomingEvents(c.Context(), today)
	if err != nil {
		return h.partialError(c, "list events failed", err)
	}

	var b strings.Builder
	b.WriteString(`<header class="d-flex flex-justify-between flex-items-center">
  <h3 class="f4 text-semibold m-0">Upcoming</h3>
  <div class="d-flex gap-1">
    <button class="Button Button--invisible size-small" disabled>&lsaquo;</button>
    <button class="Button Button--invisible size-small" disabled>&rsaquo;</button>
  </div>
</header>
<ul class="event-list">` + "\n")

	for _, e := range events {
		day, month := eventDayMonth(e.DateISO)
		meta := template.HTMLEscapeString(e.Location)
		if e.TimeText != "" {
			meta += " &bull; " + template.HTMLEscapeString(e.TimeText)
		}

		b.WriteString(`  <li class="event">` + "\n")
		fmt.Fprintf(&b, `    <div class="event-date"><span class="event-day">%s</span><span class="event-month">%s</span></div>`+"\n", day, month)
		b.WriteString(`    <div class="event-info">` + "\n")
		fmt.Fprintf(&b, `      <span class="event-title">%s</span>`+"\n", template.HTMLEscapeString(e.Title))
		fmt.Fprintf(&b, `      <span class="event-meta color-fg-muted">%s</span>`+"\n", meta)
		b.WriteString("    </div>\n")
		if e.Link != "" {
			fmt.Fprintf(&b, `    <a class="Button Button--invisible" href="%s">Details</a>`+"\n",
				template.HTMLEscapeString(e.Link))
		}
		b.WriteString("  </li>\n")
	}
	b.WriteString("</ul>")

	return c.Type("html").SendString(b.String())
}

// feedPartial renders the public post feed, newest first.
func (h *Handler) feedPartial(c fiber.Ctx) error {
	posts, err := h.reader.ListPosts(c.Context())
	if err != nil {
		return h.partialError(c, "list posts failed", err)
	}

	var b strings.Builder
	for _, p := range posts {
		b.WriteString(`<article class="post">` + "\n")
		b.WriteString(`  <div class="post-body">` + "\n")
		fmt.Fprintf(&b, `    <time class="timestamp color-fg-muted">%s</time>`+"\n",
			p.CreatedAt.Format("Jan 2, 2006"))
		fmt.Fprintf(&b, `    <div class="post-content"><p>%s</p></div>`+"\n",
			template.HTMLEscapeString(p.Content))
		if p.ImageURL != "" {
			fmt.Fprintf(&b, `    <img src="%s" alt="Post image">`+"\n",
				template.HTMLEscapeString(p.ImageURL))
		}
		b.WriteString("  </div>\n</article>\n")
	}

	return c.Type("html").SendString(b.String())
}

// adminPostsList renders the post inventory inside the admin panel.
func (h *Handler) adminPostsList(c fiber.Ctx) error {
	posts, err := h.reader.ListPosts(c.Context())
	if err != nil {
		return h.partialError(c, "list posts failed", err)
	}

	var b strings.Builder
	b.WriteString(`<ul class="list-group">` + "\n")
	for _, p := range posts {
		b.WriteString(`  <li class="list-group-item d-flex flex-column gap-1 p-2 border-bottom">` + "\n")
		fmt.Fprintf(&b, `    <div class="text-bold">%s</div>`+"\n", template.HTMLEscapeString(p.Content))
		if p.ImageURL != "" {
			fmt.Fprintf(&b, `    <img src="%s" alt="Post image" style="max-width: 100px; height: auto;">`+"\n",
				template.HTMLEscapeString(p.ImageURL))
		}
		fmt.Fprintf(&b, `    <small class="color-fg-muted">Posted on %s</small>`+"\n",
			p.CreatedAt.Format("Jan 2, 2006 15:04"))
		b.WriteString("  </li>\n")
	}
	b.WriteString("</ul>")

	return c.Type("html").SendString(b.String())
}
