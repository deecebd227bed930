package main

import (
	"context"
	"fmt"
	"os"

	"catering/internal/auth"
	"catering/internal/catalog"
	"catering/internal/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if err := db.InitSchema(ctx, e.pool, e.log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		})
	},
}

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

// createAdminCmd replaces public registration: dashboard accounts are only
// created by an operator.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Add an admin dashboard account",
	RunE: func(cmd *cobra.Command, args []string) error {
		password := adminPassword
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			service := auth.NewService(auth.NewPostgresUserRepository(e.pool))
			user, err := service.Register(ctx, adminName, adminEmail, password, auth.RoleAdmin)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
			return nil
		})
	},
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import dishes and menus from a YAML file",
	Long: `Import dishes and menus from a YAML file.

Entries are matched by their key, so running the same file again updates
dishes and menus in place instead of duplicating them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			service := catalog.NewService(catalog.NewPostgresRepository(e.pool), e.log)
			res, err := service.Seed(ctx, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dishes: %d created, %d updated\nmenus: %d created, %d updated\n",
				res.DishesCreated, res.DishesUpdated, res.MenusCreated, res.MenusUpdated)
			return nil
		})
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password (or set ADMIN_PASSWORD)")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("email")

	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the catalog YAML file")
	_ = seedCmd.MarkFlagRequired("file")
}
