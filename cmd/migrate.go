package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	RunE:  runMigration,
	Use:   "migrate",
	Short: "create collections, tables and indexes",
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	if err := setupRuntime(cfg); err != nil {
		return err
	}

	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close(ctx) }()

	if _, err := openRepositories(ctx, st); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migrated %s store %q\n", st.Driver(), cfg.Database.Name)
	return nil
}
