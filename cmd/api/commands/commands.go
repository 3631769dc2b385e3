package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/unimedia/agencysite/internal/adapters/repository"
	"github.com/unimedia/agencysite/internal/application/services"
	"github.com/unimedia/agencysite/internal/infrastructure/config"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/infrastructure/server"
)

// Set at build time with -ldflags "-X ..."
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("agencysite v%s\n", Version)
			fmt.Printf("Build Date: %s\n", BuildDate)
			fmt.Printf("Git Commit: %s\n", GitCommit)
		},
	}
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write starter content into empty collections",
		Long:  "Write the default work and skills entries into every collection that has no records yet",
		Run: func(cmd *cobra.Command, args []string) {
			runSeed(cmd.Context())
		},
	}
}

// NewHashPasswordCommand creates the hash-password command
func NewHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			hash, err := services.HashPassword(args[0])
			if err != nil {
				log.Fatalf("Failed to hash password: %v", err)
			}
			fmt.Println(hash)
		},
	}
}

// NewSettingsCommand creates the settings command with subcommands
func NewSettingsCommand() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Site settings commands",
	}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "import-phone",
		Short: "Move the phone number out of the social links collection",
		Long:  "Copy the url of the __PHONE__ social link row into the settings document and remove the row",
		Run: func(cmd *cobra.Command, args []string) {
			runImportPhone(cmd.Context())
		},
	})

	return settingsCmd
}

func runServer() {
	cfg, appLogger := bootstrap()
	defer appLogger.Close()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Fatalw("Server failed to start", "error", err)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Graceful shutdown failed", "error", err)
	}
	appLogger.Info("Server stopped")
}

func runSeed(ctx context.Context) {
	cfg, appLogger := bootstrap()
	defer appLogger.Close()

	recordRepo := repository.NewRecordRepository(cfg.Storage.DataDir, appLogger)
	written, err := services.Seed(ctx, recordRepo, appLogger)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if len(written) == 0 {
		fmt.Println("Nothing to seed, every collection already has content")
		return
	}
	for entityType, n := range written {
		fmt.Printf("Seeded %d %s records\n", n, entityType)
	}
}

func runImportPhone(ctx context.Context) {
	cfg, appLogger := bootstrap()
	defer appLogger.Close()

	recordRepo := repository.NewRecordRepository(cfg.Storage.DataDir, appLogger)
	settingsRepo := repository.NewSettingsRepository(cfg.Storage.DataDir, appLogger)
	settingsService := services.NewSettingsService(settingsRepo, recordRepo, services.NewValidator(), appLogger)

	moved, err := settingsService.MigratePhoneSentinel(ctx)
	if err != nil {
		log.Fatalf("Phone import failed: %v", err)
	}

	if moved {
		fmt.Println("Phone number moved to settings")
	} else {
		fmt.Println("No phone row found in social links")
	}
}

func bootstrap() (*config.Config, *logger.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	return cfg, appLogger
}
