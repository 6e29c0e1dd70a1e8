// Command incentivo serves the evaluation API and runs offline maintenance
// tasks against the same store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/incentivo/internal/adapters/repository"
	service "github.com/okian/incentivo/internal/app"
	"github.com/okian/incentivo/internal/config"
	"github.com/okian/incentivo/internal/domain/catalog"
	"github.com/okian/incentivo/internal/domain/scoring"
	"github.com/okian/incentivo/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// app carries state shared by subcommands once the root pre-run has loaded it.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "incentivo",
		Short: "Task evaluation scoring and bonus statistics",
		Long: `Incentivo scores evaluated tasks against per-type rubrics, aggregates
statistics and bonus percentages, and ranks the criteria that cost the most points.

Configuration is layered: defaults, then the YAML file named by --config or
INCENTIVO_CONFIG, then INCENTIVO_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (overrides INCENTIVO_CONFIG)")

	root.AddCommand(
		newServeCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newReportCmd(a),
		newCatalogCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	if a.configPath != "" {
		if err := os.Setenv(config.EnvFile, a.configPath); err != nil {
			return err
		}
	}
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if err := logger.InitWithWriter(cmd.ErrOrStderr(), cfg.LogFormat); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	a.cfg = cfg
	return nil
}

// openStore opens the configured persistence backend.
func openStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return repository.NewMemoryStore(), nil
	default:
		return repository.OpenBolt(cfg.BoltPath,
			repository.WithOpenTimeout(time.Duration(cfg.BoltTimeoutMS)*time.Millisecond))
	}
}

// newService builds and starts a Service from the loaded configuration.
func (a *app) newService(ctx context.Context) (*service.Service, error) {
	cat, err := catalog.LoadFile(a.cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	quality, err := scoring.ParseQualityStrategy(a.cfg.QualityRule)
	if err != nil {
		return nil, err
	}
	store, err := openStore(a.cfg)
	if err != nil {
		return nil, err
	}

	svc := service.New(
		service.WithLogger(logger.Get()),
		service.WithStore(store),
		service.WithCalculator(scoring.NewCalculator(
			scoring.WithCatalog(cat),
			scoring.WithQualityStrategy(quality),
		)),
		service.WithAutosaveDelay(time.Duration(a.cfg.AutosaveDelayMS)*time.Millisecond),
	)
	if err := svc.Start(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return svc, nil
}
