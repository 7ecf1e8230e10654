// Package bootstrap wires configuration into ready-to-use services.
package bootstrap

import (
	"context"
	"fmt"

	"clubxp/internal/adapters/actorctx"
	"clubxp/internal/adapters/discord"
	"clubxp/internal/application"
	"clubxp/internal/config"
	"clubxp/internal/infrastructure/database"
	"clubxp/internal/infrastructure/i18n"
	"clubxp/internal/infrastructure/memory"
	"clubxp/internal/infrastructure/objectstorage"
	"clubxp/internal/ports/output"
	"clubxp/pkg/logger"
	"clubxp/pkg/tz"
)

// App holds the services of one process.
type App struct {
	Events     *application.EventService
	Enrollment *application.EnrollmentService
	InterClub  *application.InterClubService

	closers []func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Named("bootstrap")
	app := &App{}

	store, err := app.store(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	loc, err := tz.Load(cfg.Timezone)
	if err != nil {
		app.Close()
		return nil, err
	}

	var notifier output.Notifier = discord.NewLogNotifier()
	if cfg.DiscordEnabled() {
		session, err := discord.NewSession(cfg.DiscordToken)
		if err != nil {
			app.Close()
			return nil, err
		}
		notifier = discord.NewNotifier(session, cfg.DiscordChannelID, loc)
		log.Info(ctx, "discord notifications enabled", logger.String("channel_id", cfg.DiscordChannelID))
	}

	opts := []application.Option{
		application.WithNotifier(notifier),
		application.WithTranslator(i18n.NewTranslator(cfg.Locale), cfg.Locale),
		application.WithActorResolver(actorctx.Resolver{}),
		application.WithUploadConcurrency(cfg.UploadConcurrency),
	}
	if cfg.StorageEnabled() {
		uploader, err := objectstorage.NewS3Uploader(ctx, objectstorage.Config{
			Endpoint:        cfg.StorageEndpoint,
			Region:          cfg.StorageRegion,
			Bucket:          cfg.StorageBucket,
			AccessKeyID:     cfg.StorageAccessKeyID,
			SecretAccessKey: cfg.StorageSecretAccessKey,
			PublicBaseURL:   cfg.StoragePublicBaseURL,
			KeyPrefix:       cfg.StorageKeyPrefix,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		opts = append(opts, application.WithObjectStorage(uploader))
		log.Info(ctx, "proof uploads enabled", logger.String("bucket", cfg.StorageBucket))
	}

	app.Events = application.NewEventService(store, opts...)
	app.Enrollment = application.NewEnrollmentService(store, opts...)
	app.InterClub = application.NewInterClubService(store, opts...)
	return app, nil
}

func (a *App) store(ctx context.Context, cfg *config.Config) (output.Store, error) {
	if cfg.DatabaseURL == "" {
		logger.Named("bootstrap").Warn(ctx, "no database_url, using the in-memory store")
		return memory.New(), nil
	}
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	return database.NewStore(pool), nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
