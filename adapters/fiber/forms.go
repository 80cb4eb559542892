package fiber

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/lborres/stele/core"
	"github.com/lborres/stele/services"
)

var validate = validator.New()

// postForm collects the request body into url.Values so the nested
// bracket keys can be walked without fasthttp types leaking upward.
func postForm(c fiber.Ctx) url.Values {
	values := url.Values{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}

// splitBracketKey breaks "a[b][c]" into ["a", "b", "c"]. Keys without
// brackets come back as a single segment.
func splitBracketKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return []string{key}
	}

	parts := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return nil
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil
		}
		parts = append(parts, rest[1:end])
		rest = rest[end+1:]
	}
	return parts
}

// parseSettingsForm flattens site_settings[group][key] fields into
// "group.key" entries, plus the optional layout_mode toggle. Entries
// come out key-sorted so batches apply deterministically.
func parseSettingsForm(values url.Values) services.SettingsBatch {
	batch := services.SettingsBatch{
		LayoutMode: values.Get("layout_mode"),
	}

	for key := range values {
		parts := splitBracketKey(key)
		if len(parts) != 3 || parts[0] != "site_settings" {
			continue
		}
		batch.Entries = append(batch.Entries, core.SettingEntry{
			Key:   parts[1] + "." + parts[2],
			Value: values.Get(key),
		})
	}

	sort.Slice(batch.Entries, func(i, j int) bool {
		return batch.Entries[i].Key < batch.Entries[j].Key
	})
	return batch
}

// indexedRows groups prefix[N][field] values by their numeric index and
// returns the indexes in ascending order. Non-numeric indexes are
// dropped.
func indexedRows(values url.Values, prefix string) ([]int, map[int]map[string]string) {
	rows := map[int]map[string]string{}
	for key := range values {
		parts := splitBracketKey(key)
		if len(parts) != 3 || parts[0] != prefix {
			continue
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if rows[idx] == nil {
			rows[idx] = map[string]string{}
		}
		rows[idx][parts[2]] = values.Get(key)
	}

	indexes := make([]int, 0, len(rows))
	for idx := range rows {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	return indexes, rows
}

func formBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// parseProfileForm reads the profile[...] fields and the submitted
// social_links[N][...] rows in index order. Rows with no platform and
// no URL are treated as blank filler and skipped.
func parseProfileForm(values url.Values) services.ProfileUpdate {
	update := services.ProfileUpdate{
		Name:     values.Get("profile[name]"),
		Bio:      values.Get("profile[bio]"),
		ImageURL: values.Get("profile[image_url]"),
	}

	indexes, rows := indexedRows(values, "social_links")
	for _, idx := range indexes {
		row := rows[idx]
		if row["platform"] == "" && row["url"] == "" {
			continue
		}
		update.Links = append(update.Links, services.SocialLinkInput{
			Platform:      row["platform"],
			Label:         row["label"],
			URL:           row["url"],
			Style:         row["style"],
			CustomIconURL: row["custom_icon_url"],
			UseCustomIcon: formBool(row["use_custom_icon"]),
		})
	}
	return update
}

func parsePostForm(values url.Values) services.PostInput {
	return services.PostInput{
		Content:  values.Get("post[content]"),
		ImageURL: values.Get("post[image_url]"),
	}
}

// parseEventsForm reads events[N][...] rows in index order. Rows
// missing either key field (date, title) are skipped rather than
// rejected, so a sparse form still saves the filled-in rows. The
// time_text field name is accepted as an alias for time.
func parseEventsForm(values url.Values) []services.EventInput {
	var events []services.EventInput

	indexes, rows := indexedRows(values, "events")
	for _, idx := range indexes {
		row := rows[idx]
		if row["date"] == "" || row["title"] == "" {
			continue
		}
		timeText := row["time"]
		if timeText == "" {
			timeText = row["time_text"]
		}
		events = append(events, services.EventInput{
			Date:     row["date"],
			Title:    row["title"],
			Location: row["location"],
			Time:     timeText,
			Link:     row["link"],
		})
	}
	return events
}

type postFormBody struct {
	Content string `validate:"required"`
}

type eventFormRow struct {
	Date  string `validate:"required,datetime=2006-01-02"`
	Title string `validate:"required"`
}
