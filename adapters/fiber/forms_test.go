package fiber

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBracketKey(t *testing.T) {
	cases := []struct {
		key  string
		want []string
	}{
		{"layout_mode", []string{"layout_mode"}},
		{"site_settings[color][accent]", []string{"site_settings", "color", "accent"}},
		{"events[12][time_text]", []string{"events", "12", "time_text"}},
		{"broken[unclosed", nil},
		{"broken[a]tail[b]", nil},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, splitBracketKey(tc.key), tc.key)
	}
}

func TestParseSettingsForm(t *testing.T) {
	values := url.Values{}
	values.Set("site_settings[color][accent]", "#ff7b00")
	values.Set("site_settings[color][bg]", "#0d1117")
	values.Set("site_settings[spacing][page-gutter]", "24px")
	values.Set("layout_mode", "list")
	values.Set("unrelated", "ignored")
	values.Set("site_settings[orphan]", "ignored too")

	batch := parseSettingsForm(values)

	assert.Equal(t, "list", batch.LayoutMode)
	require.Len(t, batch.Entries, 3)
	assert.Equal(t, "color.accent", batch.Entries[0].Key)
	assert.Equal(t, "#ff7b00", batch.Entries[0].Value)
	assert.Equal(t, "color.bg", batch.Entries[1].Key)
	assert.Equal(t, "spacing.page-gutter", batch.Entries[2].Key)
}

func TestParseProfileForm(t *testing.T) {
	values := url.Values{}
	values.Set("profile[name]", "Someone")
	values.Set("profile[bio]", "hi")
	values.Set("profile[image_url]", "/me.png")
	// submitted out of order; index decides position
	values.Set("social_links[2][platform]", "rss")
	values.Set("social_links[2][url]", "/feed.xml")
	values.Set("social_links[0][platform]", "github")
	values.Set("social_links[0][url]", "https://github.com/x")
	values.Set("social_links[0][use_custom_icon]", "true")
	// blank filler row
	values.Set("social_links[1][platform]", "")
	values.Set("social_links[1][url]", "")

	update := parseProfileForm(values)

	assert.Equal(t, "Someone", update.Name)
	require.Len(t, update.Links, 2)
	assert.Equal(t, "github", update.Links[0].Platform)
	assert.True(t, update.Links[0].UseCustomIcon)
	assert.Equal(t, "rss", update.Links[1].Platform)
	assert.False(t, update.Links[1].UseCustomIcon)
}

func TestParseEventsForm(t *testing.T) {
	values := url.Values{}
	values.Set("events[0][date]", "2099-10-01")
	values.Set("events[0][title]", "One")
	values.Set("events[0][time]", "18:00")
	values.Set("events[1][date]", "2099-10-02")
	values.Set("events[1][title]", "Two")
	values.Set("events[1][time_text]", "19:00")
	// missing title
	values.Set("events[2][date]", "2099-10-03")
	// non-numeric index
	values.Set("events[x][date]", "2099-10-04")
	values.Set("events[x][title]", "Bad index")

	events := parseEventsForm(values)

	require.Len(t, events, 2)
	assert.Equal(t, "One", events[0].Title)
	assert.Equal(t, "18:00", events[0].Time)
	assert.Equal(t, "Two", events[1].Title)
	assert.Equal(t, "19:00", events[1].Time, "time_text is accepted as an alias")
}

func TestParsePostForm(t *testing.T) {
	values := url.Values{}
	values.Set("post[content]", "hello")
	values.Set("post[image_url]", "/a.png")

	input := parsePostForm(values)
	assert.Equal(t, "hello", input.Content)
	assert.Equal(t, "/a.png", input.ImageURL)
}

func TestFormBool(t *testing.T) {
	for _, truthy := range []string{"1", "true", "TRUE", "on", "yes"} {
		assert.True(t, formBool(truthy), truthy)
	}
	for _, falsy := range []string{"", "0", "false", "off", "maybe"} {
		assert.False(t, formBool(falsy), falsy)
	}
}
