package services

import (
	"context"
	"fmt"

	"github.com/lborres/stele/core"
)

// ContentService groups the admin write paths. Every multi-statement
// unit runs through the store's Atomic primitive: all statements apply
// in the given order, or none do.
type ContentService struct {
	store core.ContentStorage
}

func NewContentService(store core.ContentStorage) *ContentService {
	return &ContentService{store: store}
}

// SettingsBatch is a flattened "group.key" → value mapping plus the
// optional singleton layout mode.
type SettingsBatch struct {
	Entries    []core.SettingEntry
	LayoutMode string
}

// LayoutModeKey is the reserved settings key the layout toggle is
// stored under.
const LayoutModeKey = "layout.mode"

// SaveSettings upserts every entry in one unit. Upserting an existing
// key overwrites its value; last write wins.
func (s *ContentService) SaveSettings(ctx context.Context, batch SettingsBatch) error {
	err := s.store.Atomic(ctx, func(ctx context.Context, tx core.ContentTx) error {
		for _, entry := range batch.Entries {
			if err := tx.UpsertSetting(ctx, entry.Key, entry.Value); err != nil {
				return err
			}
		}
		if batch.LayoutMode != "" {
			if err := tx.UpsertSetting(ctx, LayoutModeKey, batch.LayoutMode); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// SocialLinkInput is one submitted link; its position is assigned from
// its index in the submitted sequence.
type SocialLinkInput struct {
	Platform      string
	Label         string
	URL           string
	Style         string
	CustomIconURL string
	UseCustomIcon bool
}

// ProfileUpdate carries the singleton profile fields and the full
// replacement link list.
type ProfileUpdate struct {
	Name     string
	Bio      string
	ImageURL string
	Links    []SocialLinkInput
}

// SaveProfile updates the profile row and fully replaces its social
// links (delete-all-then-reinsert, not a diff) in submitted order with
// 1-based positions.
func (s *ContentService) SaveProfile(ctx context.Context, update ProfileUpdate) error {
	err := s.store.Atomic(ctx, func(ctx context.Context, tx core.ContentTx) error {
		profile := &core.Profile{
			ID:       core.ProfileID,
			Name:     update.Name,
			Bio:      update.Bio,
			ImageURL: update.ImageURL,
		}
		if err := tx.UpdateProfile(ctx, profile); err != nil {
			return err
		}

		if err := tx.DeleteSocialLinks(ctx, core.ProfileID); err != nil {
			return err
		}

		for i, link := range update.Links {
			row := &core.SocialLink{
				ProfileID:     core.ProfileID,
				Platform:      link.Platform,
				Label:         link.Label,
				URL:           link.URL,
				Style:         link.Style,
				Position:      i + 1,
				CustomIconURL: link.CustomIconURL,
				UseCustomIcon: link.UseCustomIcon,
			}
			if err := tx.InsertSocialLink(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// PostInput is a new feed entry.
type PostInput struct {
	Content  string
	ImageURL string
}

// CreatePost inserts one post authored by userID. A single statement,
// but it goes through the same atomic door as every other write.
func (s *ContentService) CreatePost(ctx context.Context, userID int64, input PostInput) error {
	err := s.store.Atomic(ctx, func(ctx context.Context, tx core.ContentTx) error {
		return tx.InsertPost(ctx, &core.Post{
			UserID:   userID,
			Content:  input.Content,
			ImageURL: input.ImageURL,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// EventInput is one submitted calendar entry.
type EventInput struct {
	Date     string
	Title    string
	Location string
	Time     string
	Link     string
}

// SaveEvents upserts the batch in one unit, keyed on (date, title).
// Conflicts overwrite location/time/link but never the key fields.
func (s *ContentService) SaveEvents(ctx context.Context, events []EventInput) error {
	err := s.store.Atomic(ctx, func(ctx context.Context, tx core.ContentTx) error {
		for _, e := range events {
			row := &core.Event{
				DateISO:  e.Date,
				Title:    e.Title,
				Location: e.Location,
				TimeText: e.Time,
				Link:     e.Link,
			}
			if err := tx.UpsertEvent(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}
	return nil
}
