package main

import (
	"context"
	"fmt"
	"os"

	"github.com/blackzarifa/feedback-board/internal/db"
	"github.com/blackzarifa/feedback-board/internal/models"
	"github.com/spf13/cobra"
)

var envConfig models.EnvConfig

var rootCmd = &cobra.Command{
	Use:           "feedback-board",
	Short:         "Multi-tenant feedback board with anonymous voting",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, err := models.ReadEnvConfig(".env")
		if err != nil {
			return err
		}
		envConfig = config
		return nil
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Migrate the database and serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := FeedbackServer{EnvConfig: envConfig}
		if err := server.Setup(cmd.Context()); err != nil {
			return err
		}
		return server.Run()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or revert database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return done(cmd, db.MigrateUp(envConfig.DatabaseURL))
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return done(cmd, db.MigrateDown(envConfig.DatabaseURL))
	},
}

var migrateDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop every table, including the migrations table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return done(cmd, db.Drop(envConfig.DatabaseURL))
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo company and its admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.MigrateUp(envConfig.DatabaseURL); err != nil {
			return err
		}
		sdb, err := db.Connect(cmd.Context(), &envConfig)
		if err != nil {
			return err
		}
		defer sdb.Close()

		res, err := sdb.Seed(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if res.CompanyCreated {
			fmt.Fprintf(out, "Created company %q (%s)\n", res.Company.Name, res.Company.Slug)
		} else {
			fmt.Fprintf(out, "Company %q already exists\n", res.Company.Slug)
		}
		if res.AdminCreated {
			fmt.Fprintf(out, "Created admin %s / %s\n", db.SeedAdminEmail, db.SeedAdminPassword)
		} else {
			fmt.Fprintf(out, "Admin %s already exists\n", db.SeedAdminEmail)
		}
		return nil
	},
}

func done(cmd *cobra.Command, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Done")
	return nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateDropCmd)
	rootCmd.AddCommand(startCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
