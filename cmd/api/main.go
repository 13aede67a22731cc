package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/qrdocs/deposit-system/internal/api"
	"github.com/qrdocs/deposit-system/internal/api/handler"
	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
	"github.com/qrdocs/deposit-system/internal/core/service"
	"github.com/qrdocs/deposit-system/internal/infrastructure/config"
	mongostore "github.com/qrdocs/deposit-system/internal/infrastructure/db/mongo"
	redisstore "github.com/qrdocs/deposit-system/internal/infrastructure/db/redis"
	"github.com/qrdocs/deposit-system/internal/infrastructure/memory"
	"github.com/qrdocs/deposit-system/internal/infrastructure/notify"
	"github.com/qrdocs/deposit-system/internal/infrastructure/queue"
	"github.com/qrdocs/deposit-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	var (
		ledgerRepo    ports.LedgerRepository
		directoryRepo ports.DirectoryRepository
		checks        []handler.DependencyCheck
	)

	switch cfg.Store {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("connect mongo")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		docs := mongostore.NewDocumentRepository(db)
		users := mongostore.NewUserRepository(db)
		if err := docs.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure ledger indexes")
		}
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure directory indexes")
		}
		ledgerRepo, directoryRepo = docs, users

		checks = append(checks, handler.DependencyCheck{
			Name:  "mongodb",
			Check: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		})
	default:
		ledgerRepo = memory.NewDocumentRepository()
		directoryRepo = memory.NewUserRepository()
	}

	var lockout ports.LockoutStore
	switch cfg.LockoutStore {
	case "redis":
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer rdb.Close()

		lockout = redisstore.NewLockoutStore(rdb)
		checks = append(checks, handler.DependencyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	default:
		lockout = memory.NewLockoutStore()
	}

	announcer := notify.NewAnnouncer(logger.Component("announcer"))
	dispatcher := queue.NewDispatcher(cfg.DispatcherWorkers, []queue.Subscriber{announcer}, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	creds := cfg.Credentials()
	privileged := []service.PrivilegedIdentity{
		{Username: cfg.NikitovskyUsername, Role: domain.RoleNikitovsky},
		{Username: cfg.SuperAdminUsername, Role: domain.RoleSuperAdmin},
	}

	sessions := service.NewSessionService(
		directoryRepo,
		creds,
		privileged,
		lockout,
		cfg.JWTSecret,
		time.Duration(cfg.TokenTTLHours)*time.Hour,
		logger.Component("session"),
	)
	ledger := service.NewLedgerService(ledgerRepo, cfg.Limits(), creds.ArchiveSecret, dispatcher, logger.Component("ledger"))
	directory := service.NewDirectoryService(directoryRepo, logger.Component("directory"))

	seedUsers(ctx, cfg, directoryRepo, log)

	e := api.NewRouter(api.Dependencies{
		Sessions:     sessions,
		Ledger:       ledger,
		Directory:    directory,
		Renderer:     notify.NewQRRenderer(),
		JWTSecret:    cfg.JWTSecret,
		Logger:       log,
		HealthChecks: checks,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped cleanly")
}

// seedUsers creates the configured startup users. The two privileged
// identities are always present so the dual-secret login has someone to
// bind to. Duplicates from earlier runs are fine.
func seedUsers(ctx context.Context, cfg *config.Config, repo ports.DirectoryRepository, log zerolog.Logger) {
	seeds := map[string]domain.Role{
		cfg.NikitovskyUsername: domain.RoleNikitovsky,
		cfg.SuperAdminUsername: domain.RoleSuperAdmin,
	}
	for username, role := range cfg.SeedUsers {
		seeds[username] = domain.Role(role)
	}

	for username, role := range seeds {
		if !role.Valid() {
			log.Warn().Str("username", username).Str("role", string(role)).Msg("skipping seed user with unknown role")
			continue
		}
		err := repo.Insert(ctx, &domain.User{
			Username:  username,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		})
		switch {
		case err == nil:
			log.Info().Str("username", username).Str("role", string(role)).Msg("seeded user")
		case errors.Is(err, domain.ErrDuplicateUsername):
			// Already there from a previous run.
		default:
			log.Fatal().Err(err).Str("username", username).Msg("seed user")
		}
	}
}
