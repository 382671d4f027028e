// gqlbridge - one listening socket in front of a bridged routing engine and
// a GraphQL query layer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gqlbridge/gqlbridge/pkg/config"
	"github.com/gqlbridge/gqlbridge/pkg/logging"
	"github.com/gqlbridge/gqlbridge/pkg/server"
)

// Build-time variables set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configFile string
	addr       string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "gqlbridge",
		Short:         "HTTP front-end bridge with a GraphQL query layer",
		Version:       fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags)
		},
	}

	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&flags.addr, "addr", "", "listen address (overrides config)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format: text, json")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the server (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "routes",
		Short: "Print the bridged route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(cmd, flags)
		},
	})

	return root
}

// loadConfig resolves the effective configuration from file, environment,
// and command-line flags (flags win).
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, err
	}
	if flags.addr != "" {
		cfg.Addr = flags.addr
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}
	return cfg, nil
}

func runServe(flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})

	srv, err := server.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runRoutes(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, logging.Nop())
	if err != nil {
		return err
	}

	for _, rt := range srv.RouteList() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", rt["method"], rt["path"])
	}
	return nil
}
