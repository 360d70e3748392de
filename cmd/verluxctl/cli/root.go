// Package cli implements verluxctl, the operator tool for the tree store and
// admin accounts.
package cli

import (
	"github.com/spf13/cobra"
)

// Execute builds the command tree and runs it.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verluxctl",
		Short: "Operate the Verlux Stands CMS backend",
		Long: `verluxctl talks to the same Postgres database and tree store as verlux-api,
using the same environment variables and .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newStoreCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newTOTPCmd())

	return cmd
}
