// Command coursehub runs the course registration API and its maintenance
// tasks.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appRepos "github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/bootstrap"
	"github.com/yigit/coursehub/internal/pkg/logger"
	"github.com/yigit/coursehub/internal/server"
)

// @title CourseHub API
// @version 1.0
// @description Course registration API: students, courses and enrollments
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. serve runs when no subcommand is given.
func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "coursehub",
		Short:         "Course registration API server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", bootstrap.DefaultConfigPath, "path to the YAML config file")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newMigrateCmd(&configPath))
	cmd.AddCommand(newCreateAdminCmd(&configPath))
	return cmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}
			database, err := bootstrap.SetupDatabase(commandContext(cmd), cfg, lgr)
			if err != nil {
				return reportError(err, "Migration failed")
			}
			database.Close()
			return nil
		},
	}
}

func newCreateAdminCmd(configPath *string) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}
			database, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
			if err != nil {
				return reportError(err, "Database setup failed")
			}
			defer database.Close()

			deps, err := bootstrap.BuildDependencies(cfg, appRepos.NewRepositories(database), database, lgr)
			if err != nil {
				return reportError(err, "Dependency setup failed")
			}

			admin, err := deps.Services.AuthService.CreateAdmin(ctx, username, password)
			if err != nil {
				return reportError(err, "Failed to create admin")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %q (id %d)\n", admin.Username, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	srv, err := server.NewServer(orBackground(ctx), configPath)
	if err != nil {
		return reportError(err, "Failed to initialize server")
	}
	if err := srv.Run(); err != nil {
		return reportError(err, "Server execution failed or shutdown encountered errors")
	}
	logger.Info().Msg("Application finished gracefully.")
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	return orBackground(cmd.Context())
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func reportError(err error, msg string) error {
	logger.Error().Err(err).Msg(msg)
	return err
}
