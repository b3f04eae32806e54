// Package main implements the entry point for the food delivery API server,
// which registers users and restaurants and manages restaurant menus.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/phrazzld/food-delivery-api/internal/config"
	"github.com/phrazzld/food-delivery-api/internal/platform/logger"
)

// options holds the command line flags.
type options struct {
	migrate          string
	promoteSuperuser string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a postgres migration command (up, down, status, version) and exit")
	fs.StringVar(&opts.promoteSuperuser, "promote-superuser", "",
		"grant the superuser flag to the named user and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.migrate != "" && opts.promoteSuperuser != "" {
		return options{}, fmt.Errorf("-migrate and -promote-superuser cannot be combined")
	}
	return opts, nil
}

func main() {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env file: %v", err)
	}

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	if err := run(context.Background(), opts); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"kafka_enabled", cfg.Kafka.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled)

	if opts.migrate != "" {
		return runMigrations(ctx, cfg, opts.migrate, l)
	}

	st, err := openStorage(ctx, cfg, l)
	if err != nil {
		return err
	}

	if opts.promoteSuperuser != "" {
		defer st.close(l)
		return promoteSuperuser(ctx, st, opts.promoteSuperuser, l)
	}

	app, err := newApplication(cfg, l, st)
	if err != nil {
		st.close(l)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// promoteSuperuser is the only way to grant the superuser flag; no HTTP
// route can.
func promoteSuperuser(ctx context.Context, s *storage, username string, l *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.users.SetSuperuser(ctx, username, true); err != nil {
		return fmt.Errorf("failed to promote %q: %w", username, err)
	}
	l.Info("user promoted to superuser", "username", username)
	return nil
}
