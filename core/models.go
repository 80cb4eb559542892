package core

import "time"

// User represents an account able to sign in.
//
// Users are provisioned out-of-band (startup seed); nothing in the
// request path creates or mutates them.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RoleAdmin is the only role the seed creates today.
const RoleAdmin = "admin"

// Session represents an active login session.
//
// Only the sha256 hash of the opaque token is stored; the raw token
// lives in the client's cookie and nowhere else.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	TokenHash string    `json:"-"` // Never expose in JSON (security!)
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the singleton profile card shown on the site.
type Profile struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	ImageURL string `json:"imageUrl"`
}

// ProfileID is the fixed identifier of the singleton profile row.
const ProfileID = 1

// SocialLink is one entry in the profile's link list. Position is
// 1-based and assigned from submission order.
type SocialLink struct {
	ID            int64  `json:"id"`
	ProfileID     int64  `json:"profileId"`
	Platform      string `json:"platform"`
	Label         string `json:"label"`
	URL           string `json:"url"`
	Style         string `json:"style"`
	Position      int    `json:"position"`
	CustomIconURL string `json:"customIconUrl"`
	UseCustomIcon bool   `json:"useCustomIcon"`
}

// Post is a feed entry authored by a user.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event is a calendar entry, identified by the composite (DateISO, Title).
// Upserts overwrite the remaining fields but never the key pair.
type Event struct {
	ID       int64  `json:"id"`
	DateISO  string `json:"date"` // YYYY-MM-DD
	Title    string `json:"title"`
	Location string `json:"location"`
	TimeText string `json:"time"`
	Link     string `json:"link"`
}

// SettingEntry is one flattened "group.key" → value pair of the
// site_settings table.
type SettingEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
