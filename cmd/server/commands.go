package main

import (
	"context"
	"fmt"
	"log"

	"adboard/internal/ads"
	"adboard/internal/config"
	"adboard/internal/domain"
	"adboard/internal/media"
	"adboard/internal/message"
	"adboard/internal/repository"
	"adboard/internal/repository/sqlite"
	"adboard/internal/retention"
	"adboard/internal/server"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "adboard",
		Short:        "Classified ads board backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "config.json", "path to the JSON configuration file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired ads and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurge(cmd.Context())
		},
	})

	return root
}

// app holds the opened stores shared by all commands
type app struct {
	cfg      *config.Config
	db       *sqlite.DB
	repos    *repository.Repositories
	media    *media.Store
	messages *message.Store
	policy   *retention.Policy
}

// bootstrap loads configuration from path and opens every store
func bootstrap(path string) (*app, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️ No .env file found, using environment")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sqlite.New(cfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("✅ Database initialized")

	mediaStore, err := media.NewStore(cfg.Storage.UploadDir)
	if err != nil {
		db.Close()
		return nil, err
	}

	repos := &repository.Repositories{
		Ads: sqlite.NewAdRepo(db),
	}

	return &app{
		cfg:      cfg,
		db:       db,
		repos:    repos,
		media:    mediaStore,
		messages: message.NewStore(cfg.Storage.MessagePath),
		policy:   retention.NewPolicy(repos.Ads, domain.SystemClock{}, cfg.MaxAge()),
	}, nil
}

// prepare seeds the global message if absent and purges expired ads.
// A failed purge is logged; the server still starts.
func (a *app) prepare(ctx context.Context) error {
	seeded, err := a.messages.EnsureSeeded(a.cfg.Message.Sample)
	if err != nil {
		return err
	}
	if seeded {
		log.Printf("✅ Global message seeded at %s", a.messages.Path())
	}

	if _, err := a.policy.PurgeExpired(ctx); err != nil {
		log.Printf("⚠️ Startup purge failed: %v", err)
	}
	return nil
}

func runServe() error {
	a, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer a.db.Close()

	log.Printf("📋 Debug mode: %v", a.cfg.Debug)

	if err := a.prepare(context.Background()); err != nil {
		return err
	}

	svc := ads.NewService(a.repos.Ads, a.media, a.policy, domain.SystemClock{})
	srv := server.New(a.cfg, svc, a.media, a.messages)

	log.Printf("🌐 Server listening on http://%s", a.cfg.Address())

	return srv.Run()
}

func runPurge(ctx context.Context) error {
	a, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer a.db.Close()

	n, err := a.policy.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}
	log.Printf("✅ Purge complete: %d ads older than %s removed", n, a.policy.MaxAge())
	return nil
}
