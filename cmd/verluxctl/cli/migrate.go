package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verluxstands/verlux-api/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the admin, session, audit and tree tables if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			e, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if _, err := e.db.ExecContext(ctx, database.Schema); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}
