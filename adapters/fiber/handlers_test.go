package fiber

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/lborres/stele/core"
	"github.com/lborres/stele/pkg/cache"
	"github.com/lborres/stele/pkg/crypto"
	"github.com/lborres/stele/services"
)

const (
	testUsername = "admin"
	testPassword = "hunter2-correct-horse"
)

type testEnv struct {
	app   *fiber.App
	users *services.FakeUserStorage
	store *services.FakeContentStorage
}

func setupApp(t *testing.T) *testEnv {
	t.Helper()

	users := services.NewFakeUserStorage()
	sessionStore := services.NewFakeSessionStorage()
	store := services.NewFakeContentStorage()

	hasher := crypto.NewArgon2()
	hash, err := hasher.Hash(testPassword)
	require.NoError(t, err)
	require.NoError(t, users.CreateUser(context.Background(), &core.User{
		Username:     testUsername,
		PasswordHash: hash,
		Role:         core.RoleAdmin,
	}))

	sessionCache := cache.NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 16})
	sessions := services.NewSessionManager(core.DefaultSessionConfig(), sessionStore, sessionCache)
	auth := services.NewAuthService(users, hasher, sessions)
	content := services.NewContentService(store)

	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New()
	New(auth, content, store, log, false).RegisterRoutes(app)

	return &testEnv{app: app, users: users, store: store}
}

// postFormRequest builds an urlencoded POST, attaching the session
// cookie when one is given.
func postFormRequest(path string, form url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// login authenticates against the test app and returns the issued
// session cookie.
func login(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("username", testUsername)
	form.Set("password", testPassword)

	resp, err := env.app.Test(postFormRequest("/login", form, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(body)
}
