package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/lexkit/lexsync/config"
	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/lifecycle"
	"github.com/lexkit/lexsync/reconcile"
)

var configPath string

func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexsync",
		Short: "Keep declarative conversational-bot definitions in sync with the remote modeling service",
		Long: `lexsync reconciles a declared bot resource tree (bot, locales, slot types,
intents, slots) against the remote bot-modeling service, snapshots immutable
versions, and points aliases at them.

Run it as a daemon serving lifecycle requests, or use the one-shot commands
to apply or destroy a desired state from a YAML file.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file")

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newApplyCommand())
	cmd.AddCommand(newDestroyCommand())

	return cmd
}

// runtime bundles the wired components every command needs.
type runtime struct {
	cfg     config.Config
	log     zerolog.Logger
	svc     *reconcile.Service
	handler *lifecycle.Handler
}

func buildRuntime() (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base_url must be configured")
	}

	client := gateway.NewHTTPModelClient(cfg.BaseURL, nil, log)
	gw := gateway.New(client, log, gateway.Options{
		PollInterval:    cfg.PollInterval,
		MaxWaitAttempts: cfg.MaxWaitAttempts,
		RateLimit:       rate.Limit(cfg.RateLimit),
	})
	svc := reconcile.NewService(gw, log, reconcile.Options{
		MaxConcurrentBuilds: cfg.MaxConcurrentBuilds,
		BuildRetryLimit:     cfg.BuildRetryLimit,
	})

	return &runtime{
		cfg:     cfg,
		log:     log,
		svc:     svc,
		handler: lifecycle.NewHandler(svc, log),
	}, nil
}
