package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/Dan9191/kos-service/internal/config"
	"github.com/Dan9191/kos-service/internal/repository"
	"github.com/Dan9191/kos-service/internal/service"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "kos-admin",
		Short:        "Administrative tasks for the kos service",
		SilenceUsage: true,
	}
	root.AddCommand(newCreateAdminCmd())
	return root
}

func newCreateAdminCmd() *cobra.Command {
	var name, emailAddr, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetFormatter(&logrus.JSONFormatter{})

			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			db, err := sql.Open("postgres", cfg.DBConn)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			repo := repository.NewRepository(db)
			if err := repo.Migrate(ctx); err != nil {
				return err
			}

			user, err := service.NewService(service.Repositories{Users: repo}, logger, cfg).CreateAdmin(ctx, name, emailAddr, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created with id %s\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&emailAddr, "email", "admin@kos.com", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password (at least 8 characters)")
	cmd.MarkFlagRequired("password")
	return cmd
}
