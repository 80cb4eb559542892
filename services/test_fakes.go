package services

import (
	"context"
	"sync"

	"github.com/lborres/stele/core"
)

// FakeUserStorage is a test-only fake implementing core.UserStorage.
type FakeUserStorage struct {
	mu     sync.RWMutex
	users  map[int64]*core.User
	nextID int64
	getErr error
}

func NewFakeUserStorage() *FakeUserStorage {
	return &FakeUserStorage{users: make(map[int64]*core.User), nextID: 1}
}

func (f *FakeUserStorage) CreateUser(ctx context.Context, u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return nil
}

func (f *FakeUserStorage) GetUserByID(ctx context.Context, id int64) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return u, nil
}

func (f *FakeUserStorage) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeUserStorage) CountUsers(ctx context.Context) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.users), nil
}

// FakeSessionStorage is a test-only fake implementing core.SessionStorage.
// It stores sessions in a map and exposes error fields for behavior injection.
type FakeSessionStorage struct {
	mu        sync.RWMutex
	sessions  map[string]*core.Session
	createErr error
	getErr    error
	deleteErr error
}

func NewFakeSessionStorage() *FakeSessionStorage {
	return &FakeSessionStorage{sessions: make(map[string]*core.Session)}
}

func (f *FakeSessionStorage) CreateSession(ctx context.Context, s *core.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.sessions[s.TokenHash] = s
	return nil
}

func (f *FakeSessionStorage) GetSessionByHash(ctx context.Context, tokenHash string) (*core.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

func (f *FakeSessionStorage) DeleteSessionByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for k, s := range f.sessions {
		if s.ID == id {
			delete(f.sessions, k)
			return nil
		}
	}
	return nil
}

func (f *FakeSessionStorage) DeleteSessionByHash(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.sessions, tokenHash)
	return nil
}

// Len reports the number of stored sessions.
func (f *FakeSessionStorage) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}

// fakeContentState is the committed state behind FakeContentStorage.
type fakeContentState struct {
	settings map[string]string
	profile  core.Profile
	links    []*core.SocialLink
	posts    []*core.Post
	events   map[string]*core.Event // keyed by dateISO + "\x00" + title
}

func (s *fakeContentState) clone() *fakeContentState {
	c := &fakeContentState{
		settings: make(map[string]string, len(s.settings)),
		profile:  s.profile,
		links:    append([]*core.SocialLink(nil), s.links...),
		posts:    append([]*core.Post(nil), s.posts...),
		events:   make(map[string]*core.Event, len(s.events)),
	}
	for k, v := range s.settings {
		c.settings[k] = v
	}
	for k, v := range s.events {
		ev := *v
		c.events[k] = &ev
	}
	return c
}

// FakeContentStorage is a test-only fake implementing core.ContentStorage.
// Atomic stages writes on a copy and swaps it in only on success, so
// rollback behavior matches the real store.
type FakeContentStorage struct {
	mu    sync.RWMutex
	state *fakeContentState

	// error injection
	upsertSettingErr error
	insertLinkErr    error
	upsertEventErr   error
	insertPostErr    error
}

func NewFakeContentStorage() *FakeContentStorage {
	return &FakeContentStorage{
		state: &fakeContentState{
			settings: make(map[string]string),
			profile:  core.Profile{ID: core.ProfileID},
			events:   make(map[string]*core.Event),
		},
	}
}

func (f *FakeContentStorage) Atomic(ctx context.Context, fn func(ctx context.Context, tx core.ContentTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	staged := f.state.clone()
	tx := &fakeContentTx{state: staged, store: f}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	f.state = staged
	return nil
}

type fakeContentTx struct {
	state *fakeContentState
	store *FakeContentStorage
}

func (t *fakeContentTx) UpsertSetting(ctx context.Context, key, value string) error {
	if t.store.upsertSettingErr != nil {
		return t.store.upsertSettingErr
	}
	t.state.settings[key] = value
	return nil
}

func (t *fakeContentTx) UpdateProfile(ctx context.Context, p *core.Profile) error {
	t.state.profile = *p
	return nil
}

func (t *fakeContentTx) DeleteSocialLinks(ctx context.Context, profileID int64) error {
	kept := t.state.links[:0]
	for _, l := range t.state.links {
		if l.ProfileID != profileID {
			kept = append(kept, l)
		}
	}
	t.state.links = kept
	return nil
}

func (t *fakeContentTx) InsertSocialLink(ctx context.Context, l *core.SocialLink) error {
	if t.store.insertLinkErr != nil {
		return t.store.insertLinkErr
	}
	row := *l
	t.state.links = append(t.state.links, &row)
	return nil
}

func (t *fakeContentTx) InsertPost(ctx context.Context, p *core.Post) error {
	if t.store.insertPostErr != nil {
		return t.store.insertPostErr
	}
	row := *p
	row.ID = int64(len(t.state.posts) + 1)
	t.state.posts = append(t.state.posts, &row)
	return nil
}

func (t *fakeContentTx) UpsertEvent(ctx context.Context, e *core.Event) error {
	if t.store.upsertEventErr != nil {
		return t.store.upsertEventErr
	}
	key := e.DateISO + "\x00" + e.Title
	if existing, ok := t.state.events[key]; ok {
		existing.Location = e.Location
		existing.TimeText = e.TimeText
		existing.Link = e.Link
		return nil
	}
	row := *e
	t.state.events[key] = &row
	return nil
}

func (f *FakeContentStorage) ListSettings(ctx context.Context) ([]*core.SettingEntry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*core.SettingEntry
	for k, v := range f.state.settings {
		out = append(out, &core.SettingEntry{Key: k, Value: v})
	}
	return out, nil
}

func (f *FakeContentStorage) GetProfile(ctx context.Context) (*core.Profile, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p := f.state.profile
	return &p, nil
}

func (f *FakeContentStorage) ListSocialLinks(ctx context.Context, profileID int64) ([]*core.SocialLink, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*core.SocialLink
	for _, l := range f.state.links {
		if l.ProfileID == profileID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *FakeContentStorage) ListPosts(ctx context.Context) ([]*core.Post, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*core.Post, 0, len(f.state.posts))
	for i := len(f.state.posts) - 1; i >= 0; i-- {
		out = append(out, f.state.posts[i])
	}
	return out, nil
}

func (f *FakeContentStorage) ListUpcomingEvents(ctx context.Context, from string) ([]*core.Event, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*core.Event
	for _, e := range f.state.events {
		if e.DateISO >= from {
			out = append(out, e)
		}
	}
	return out, nil
}

// Settings returns a copy of the committed settings map.
func (f *FakeContentStorage) Settings() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.state.settings))
	for k, v := range f.state.settings {
		out[k] = v
	}
	return out
}
