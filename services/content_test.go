package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lborres/stele/core"
)

// Requirement: each group.key upserted once yields a single entry; upserting
// again overwrites instead of duplicating.
func TestContentService_SaveSettings_Upsert(t *testing.T) {
	// Arrange
	store := NewFakeContentStorage()
	service := NewContentService(store)
	ctx := context.Background()

	// Act: first write
	err := service.SaveSettings(ctx, SettingsBatch{
		Entries: []core.SettingEntry{
			{Key: "color.accent", Value: "#ff0000"},
			{Key: "spacing.gap", Value: "8px"},
		},
		LayoutMode: "grid",
	})
	if err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	// Overwrite one key
	err = service.SaveSettings(ctx, SettingsBatch{
		Entries: []core.SettingEntry{{Key: "color.accent", Value: "#00ff00"}},
	})
	if err != nil {
		t.Fatalf("SaveSettings() overwrite error = %v", err)
	}

	// Assert
	settings := store.Settings()
	if len(settings) != 3 {
		t.Fatalf("settings count = %d, want 3", len(settings))
	}
	if settings["color.accent"] != "#00ff00" {
		t.Errorf("color.accent = %q, want overwritten value", settings["color.accent"])
	}
	if settings[LayoutModeKey] != "grid" {
		t.Errorf("layout.mode = %q, want grid", settings[LayoutModeKey])
	}
}

// Requirement: a failing statement rolls back the entire unit; no partial
// application is observable afterward.
func TestContentService_SaveSettings_RollbackOnFailure(t *testing.T) {
	store := NewFakeContentStorage()
	service := NewContentService(store)
	ctx := context.Background()

	if err := service.SaveSettings(ctx, SettingsBatch{
		Entries: []core.SettingEntry{{Key: "color.accent", Value: "#111111"}},
	}); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	store.upsertSettingErr = errors.New("constraint violation")
	err := service.SaveSettings(ctx, SettingsBatch{
		Entries: []core.SettingEntry{
			{Key: "color.accent", Value: "#222222"},
			{Key: "color.bg", Value: "#333333"},
		},
	})
	if err == nil {
		t.Fatal("SaveSettings() should fail when a statement fails")
	}

	settings := store.Settings()
	if settings["color.accent"] != "#111111" {
		t.Errorf("color.accent = %q, want pre-failure value", settings["color.accent"])
	}
	if _, ok := settings["color.bg"]; ok {
		t.Error("no statement of a failed unit may be visible")
	}
}

// Requirement: a profile batch with N links yields exactly N rows positioned
// 1..N in submitted order, with prior links removed.
func TestContentService_SaveProfile_ReplacesLinks(t *testing.T) {
	store := NewFakeContentStorage()
	service := NewContentService(store)
	ctx := context.Background()

	// Seed an existing link set
	err := service.SaveProfile(ctx, ProfileUpdate{
		Name: "Old Name",
		Links: []SocialLinkInput{
			{Platform: "mastodon", Label: "Mastodon", URL: "https://example.social/@old"},
		},
	})
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	// Act: full replacement in a new order
	err = service.SaveProfile(ctx, ProfileUpdate{
		Name:     "New Name",
		Bio:      "hello",
		ImageURL: "https://example.com/me.png",
		Links: []SocialLinkInput{
			{Platform: "github", Label: "GitHub", URL: "https://github.com/someone"},
			{Platform: "rss", Label: "RSS", URL: "/feed.xml", UseCustomIcon: true, CustomIconURL: "/icons/rss.svg"},
			{Platform: "email", Label: "Email", URL: "mailto:hi@example.com"},
		},
	})
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	// Assert
	profile, err := store.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.Name != "New Name" || profile.Bio != "hello" {
		t.Errorf("profile = %+v, want updated fields", profile)
	}

	links, err := store.ListSocialLinks(ctx, core.ProfileID)
	if err != nil {
		t.Fatalf("ListSocialLinks() error = %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("link rows = %d, want 3", len(links))
	}
	wantPlatforms := []string{"github", "rss", "email"}
	for i, link := range links {
		if link.Position != i+1 {
			t.Errorf("link %d position = %d, want %d", i, link.Position, i+1)
		}
		if link.Platform != wantPlatforms[i] {
			t.Errorf("link %d platform = %q, want %q", i, link.Platform, wantPlatforms[i])
		}
	}
}

// Requirement: a failed link insert leaves the previous profile and link set
// fully intact.
func TestContentService_SaveProfile_RollbackOnFailure(t *testing.T) {
	store := NewFakeContentStorage()
	service := NewContentService(store)
	ctx := context.Background()

	if err := service.SaveProfile(ctx, ProfileUpdate{
		Name:  "Keep Me",
		Links: []SocialLinkInput{{Platform: "github", Label: "GitHub"}},
	}); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	store.insertLinkErr = errors.New("constraint violation")
	err := service.SaveProfile(ctx, ProfileUpdate{
		Name:  "Broken",
		Links: []SocialLinkInput{{Platform: "rss", Label: "RSS"}},
	})
	if err == nil {
		t.Fatal("SaveProfile() should fail when a link insert fails")
	}

	profile, _ := store.GetProfile(ctx)
	if profile.Name != "Keep Me" {
		t.Errorf("profile name = %q, want pre-failure value", profile.Name)
	}
	links, _ := store.ListSocialLinks(ctx, core.ProfileID)
	if len(links) != 1 || links[0].Platform != "github" {
		t.Errorf("links = %+v, want original single github link", links)
	}
}

// Requirement: events upsert on (date, title); re-posting updates the row
// in place instead of creating a second one.
func TestContentService_SaveEvents_UpsertByDateAndTitle(t *testing.T) {
	store := NewFakeContentStorage()
	service := NewContentService(store)
	ctx := context.Background()

	err := service.SaveEvents(ctx, []EventInput{
		{Date: "2025-10-01", Title: "Event 1", Location: "Hall A"},
	})
	if err != nil {
		t.Fatalf("SaveEvents() error = %v", err)
	}

	// Same key, different location
	err = service.SaveEvents(ctx, []EventInput{
		{Date: "2025-10-01", Title: "Event 1", Location: "Hall B", Time: "19:00"},
	})
	if err != nil {
		t.Fatalf("SaveEvents() error = %v", err)
	}

	events, err := store.ListUpcomingEvents(ctx, "2025-01-01")
	if err != nil {
		t.Fatalf("ListUpcomingEvents() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("event rows = %d, want 1", len(events))
	}
	if events[0].Location != "Hall B" || events[0].TimeText != "19:00" {
		t.Errorf("event = %+v, want updated location and time", events[0])
	}
	if events[0].DateISO != "2025-10-01" || events[0].Title != "Event 1" {
		t.Errorf("upsert must never change the key fields, got %+v", events[0])
	}
}

func TestContentService_SaveEvents_RollbackOnFailure(t *testing.T) {
	store := NewFakeContentStorage()
	service := NewContentService(store)
	ctx := context.Background()

	store.upsertEventErr = errors.New("constraint violation")
	err := service.SaveEvents(ctx, []EventInput{
		{Date: "2025-10-01", Title: "Event 1"},
	})
	if err == nil {
		t.Fatal("SaveEvents() should fail when a statement fails")
	}

	events, _ := store.ListUpcomingEvents(ctx, "2025-01-01")
	if len(events) != 0 {
		t.Errorf("event rows = %d, want 0 after rollback", len(events))
	}
}

func TestContentService_CreatePost(t *testing.T) {
	store := NewFakeContentStorage()
	service := NewContentService(store)
	ctx := context.Background()

	if err := service.CreatePost(ctx, 1, PostInput{Content: "hello world"}); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	posts, err := store.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(posts) != 1 || posts[0].Content != "hello world" || posts[0].UserID != 1 {
		t.Errorf("posts = %+v, want single post by user 1", posts)
	}
}
