package main

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"

	fiberadapter "github.com/lborres/stele/adapters/fiber"
	"github.com/lborres/stele/adapters/sqlite"
	"github.com/lborres/stele/config"
	"github.com/lborres/stele/core"
	"github.com/lborres/stele/pkg/cache"
	"github.com/lborres/stele/pkg/crypto"
	"github.com/lborres/stele/services"
)

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	if cfg.AppEnv == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// seedAdmin creates the initial account when the users table is empty,
// so a fresh database is immediately usable.
func seedAdmin(ctx context.Context, cfg *config.Config, store core.UserStorage, hasher crypto.PasswordHandler, log *logrus.Logger) error {
	n, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	user := &core.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		Role:         core.RoleAdmin,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"username": user.Username}).Info("seeded initial admin user")
	return nil
}

func main() {
	cfg := config.Load()
	log := newLogger(cfg)
	ctx := context.Background()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("could not open database")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		log.WithError(err).Fatal("could not run migrations")
	}

	hasher := crypto.NewArgon2()
	if err := seedAdmin(ctx, cfg, store, hasher, log); err != nil {
		log.WithError(err).Fatal("could not seed admin user")
	}

	sessionCache := cache.NewInMemoryCache(core.CacheConfig{
		TTL:     cfg.SessionCacheTTL,
		MaxSize: cfg.SessionCacheSize,
	})
	sessions := services.NewSessionManager(core.SessionConfig{MaxAge: cfg.SessionMaxAge}, store, sessionCache)
	auth := services.NewAuthService(store, hasher, sessions)
	content := services.NewContentService(store)

	app := fiber.New(fiber.Config{AppName: cfg.AppName})
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time}|${requestid}|${status}|${latency}|${method}|${path}\n",
		TimeFormat: "2006/01/02 15:04:05",
		TimeZone:   "Local",
	}))

	handler := fiberadapter.New(auth, content, store, log, cfg.IsProduction())
	handler.RegisterRoutes(app)

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"env":  cfg.AppEnv,
		"db":   cfg.DBPath,
	}).Info("starting server")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
