package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/wordsprint/wordsprint-api/internal/config"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
	"github.com/wordsprint/wordsprint-api/internal/platform/postgres"
	"github.com/wordsprint/wordsprint-api/internal/seed"
)

// newRootCmd builds the wordsprint command tree.
func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "wordsprint",
		Short:         "English/Turkish vocabulary quiz API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "",
		"path to a config file (defaults to ./config.yaml when present)")

	root.AddCommand(
		newServeCmd(&configFile),
		newMigrateCmd(&configFile),
		newSeedCmd(&configFile),
	)
	return root
}

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}
			log.Info("server configuration loaded",
				slog.Int("port", cfg.Server.Port),
				slog.String("log_level", cfg.Server.LogLevel))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := postgres.Open(ctx, cfg.Database, log)
			if err != nil {
				return err
			}

			app, err := newApplication(cfg, log, db)
			if err != nil {
				_ = db.Close()
				return err
			}
			return app.Run(ctx)
		},
	}
}

func newMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [command] [args...]",
		Short: "Run database migrations",
		Long: fmt.Sprintf("Run a goose migration command against the configured database.\n"+
			"Commands: %v. Defaults to up.", postgres.MigrationCommands),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) > 0 {
				command, args = args[0], args[1:]
			}
			if !lo.Contains(postgres.MigrationCommands, command) {
				return fmt.Errorf("unknown migration command %q (expected one of %v)",
					command, postgres.MigrationCommands)
			}

			return withDatabase(cmd.Context(), *configFile, func(ctx context.Context, env *toolEnv) error {
				return postgres.Migrate(ctx, env.db, command, env.logger, args...)
			})
		},
	}
}

func newSeedCmd(configFile *string) *cobra.Command {
	var (
		file  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load word pairs into the catalog",
		Long: "Insert the built-in starter word list, or the pairs in a TOML file, into the catalog.\n" +
			"Nothing is written when the catalog already has words unless --force is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pairs, err := loadPairs(file)
			if err != nil {
				return err
			}

			return withDatabase(cmd.Context(), *configFile, func(ctx context.Context, env *toolEnv) error {
				words := postgres.NewPostgresWordStore(env.db, env.logger)
				res, err := seed.Apply(ctx, words, pairs, force, env.logger)
				if err != nil {
					return err
				}
				if res.Skipped {
					fmt.Fprintln(cmd.OutOrStdout(), "catalog already has words; use --force to add more")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "inserted %d of %d words\n", res.Inserted, res.Parsed)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "TOML word list to load instead of the built-in list")
	cmd.Flags().BoolVar(&force, "force", false, "insert even when the catalog is not empty")
	return cmd
}

func loadPairs(file string) ([]seed.Pair, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.LoadFile(file)
}

// toolEnv carries what the maintenance commands need.
type toolEnv struct {
	db     *sql.DB
	logger *slog.Logger
}

// withDatabase opens the configured database, runs fn and closes the
// connection. Only the database section of the configuration is required.
func withDatabase(ctx context.Context, configFile string, fn func(ctx context.Context, env *toolEnv) error) error {
	dbCfg, err := config.LoadDatabase(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(os.Stderr, "info")
	db, err := postgres.Open(ctx, *dbCfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database connection", slog.String("error", cerr.Error()))
		}
	}()

	return fn(ctx, &toolEnv{db: db, logger: log})
}
