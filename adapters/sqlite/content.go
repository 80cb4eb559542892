package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lborres/stele/core"
	"github.com/lborres/stele/pkg/dbx"
)

// Atomic runs fn inside a single transaction; any error rolls the whole
// unit back. This is the only write path into the content tables.
func (a *Adapter) Atomic(ctx context.Context, fn func(ctx context.Context, tx core.ContentTx) error) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &contentTx{db: tx})
	})
}

// contentTx implements core.ContentTx over a transactional handle.
type contentTx struct {
	db dbx.DBTX
}

var _ core.ContentTx = (*contentTx)(nil)

func (t *contentTx) UpsertSetting(ctx context.Context, key, value string) error {
	query := `INSERT INTO site_settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	_, err := t.db.ExecContext(ctx, query, key, value)
	return err
}

func (t *contentTx) UpdateProfile(ctx context.Context, p *core.Profile) error {
	query := `UPDATE profile SET name = ?, bio = ?, image_url = ? WHERE id = ?`
	res, err := t.db.ExecContext(ctx, query, p.Name, p.Bio, p.ImageURL, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrProfileNotFound
	}
	return nil
}

func (t *contentTx) DeleteSocialLinks(ctx context.Context, profileID int64) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM social_links WHERE profile_id = ?`, profileID)
	return err
}

func (t *contentTx) InsertSocialLink(ctx context.Context, l *core.SocialLink) error {
	query := `INSERT INTO social_links
		(profile_id, platform, label, url, style, position, custom_icon_url, use_custom_icon)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := t.db.ExecContext(ctx, query,
		l.ProfileID, l.Platform, l.Label, l.URL, l.Style, l.Position, l.CustomIconURL, boolToInt(l.UseCustomIcon))
	if err != nil {
		return err
	}
	l.ID, err = res.LastInsertId()
	return err
}

func (t *contentTx) InsertPost(ctx context.Context, p *core.Post) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	query := `INSERT INTO posts (user_id, content, image_url, created_at) VALUES (?, ?, ?, ?)`
	res, err := t.db.ExecContext(ctx, query,
		p.UserID, p.Content, p.ImageURL, p.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (t *contentTx) UpsertEvent(ctx context.Context, e *core.Event) error {
	query := `INSERT INTO events (date_iso, title, location, time_text, link)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date_iso, title) DO UPDATE SET
			location = excluded.location,
			time_text = excluded.time_text,
			link = excluded.link`
	_, err := t.db.ExecContext(ctx, query, e.DateISO, e.Title, e.Location, e.TimeText, e.Link)
	return err
}

// Read side. Reads run outside any writer transaction and observe only
// committed state.

func (a *Adapter) ListSettings(ctx context.Context) ([]*core.SettingEntry, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT key, value FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*core.SettingEntry
	for rows.Next() {
		entry := &core.SettingEntry{}
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (a *Adapter) GetProfile(ctx context.Context) (*core.Profile, error) {
	q := `SELECT id, name, bio, image_url FROM profile WHERE id = ?`

	p := &core.Profile{}
	err := a.db.QueryRowContext(ctx, q, core.ProfileID).Scan(&p.ID, &p.Name, &p.Bio, &p.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (a *Adapter) ListSocialLinks(ctx context.Context, profileID int64) ([]*core.SocialLink, error) {
	q := `SELECT id, profile_id, platform, label, url, style, position, custom_icon_url, use_custom_icon
		FROM social_links WHERE profile_id = ? ORDER BY position`

	rows, err := a.db.QueryContext(ctx, q, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*core.SocialLink
	for rows.Next() {
		l := &core.SocialLink{}
		var useCustomIcon int
		err := rows.Scan(&l.ID, &l.ProfileID, &l.Platform, &l.Label, &l.URL, &l.Style,
			&l.Position, &l.CustomIconURL, &useCustomIcon)
		if err != nil {
			return nil, err
		}
		l.UseCustomIcon = useCustomIcon != 0
		links = append(links, l)
	}
	return links, rows.Err()
}

func (a *Adapter) ListPosts(ctx context.Context) ([]*core.Post, error) {
	q := `SELECT id, user_id, content, image_url, created_at FROM posts ORDER BY created_at DESC, id DESC`

	rows, err := a.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*core.Post
	for rows.Next() {
		p := &core.Post{}
		var createdAt string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.ImageURL, &createdAt); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (a *Adapter) ListUpcomingEvents(ctx context.Context, from string) ([]*core.Event, error) {
	q := `SELECT id, date_iso, title, location, time_text, link FROM events
		WHERE date_iso >= ? ORDER BY date_iso, title`

	rows, err := a.db.QueryContext(ctx, q, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*core.Event
	for rows.Next() {
		e := &core.Event{}
		if err := rows.Scan(&e.ID, &e.DateISO, &e.Title, &e.Location, &e.TimeText, &e.Link); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
