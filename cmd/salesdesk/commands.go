package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/salesdesk/config"
	"github.com/shashiranjanraj/salesdesk/pkg/app"
)

// boot loads configuration with cmd's flags on top and connects.
func boot(ctx context.Context, cmd *cobra.Command) (*app.Application, error) {
	cfg, err := config.Load(config.Options{Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}
	return app.Boot(ctx, cfg)
}

// salesdesk serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP API and the gRPC health server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := boot(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Migrate(ctx); err != nil {
			return err
		}
		return a.Serve(ctx)
	},
}

// salesdesk route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.PrintRoutes(cmd.OutOrStdout())
	},
}

// salesdesk migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the collection indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "Ensuring indexes…")
		names, err := a.Migrate(cmd.Context())
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), "  •", n)
		}
		return nil
	},
}

// salesdesk seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "Seeding…")
		return a.Seed(cmd.Context(), cmd.OutOrStdout())
	},
}

// salesdesk token <email>
var tokenCmd = &cobra.Command{
	Use:   "token <email>",
	Short: "Issue an access token for an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		token, err := a.IssueToken(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port (overrides APP_PORT)")
	serveCmd.Flags().String("grpc-port", "", "gRPC health port, empty disables (overrides GRPC_PORT)")
}
