package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/repository"
	"github.com/verluxstands/verlux-api/internal/service"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

func newTOTPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "totp",
		Short: "Inspect and reset two-factor settings",
	}
	cmd.AddCommand(newTOTPStatusCmd())
	cmd.AddCommand(newTOTPListCmd())
	cmd.AddCommand(newTOTPDisableCmd())
	cmd.AddCommand(newTOTPCodeCmd())
	return cmd
}

func settingsService(e *env) *service.TOTPSettingsService {
	return service.NewTOTPSettingsService(repository.NewTOTPSettingsRepository(e.store), service.NewTOTPService(e.cfg.TOTP, nil, e.logger), e.logger)
}

func newTOTPStatusCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether an account has two-factor login enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			e, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			status, err := settingsService(e).Status(ctx, email)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), email, *status)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newTOTPListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every account with stored two-factor settings",
		Long: `Emails are decoded from their storage keys. Addresses that contained "_"
before encoding are shown with "." in its place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			e, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			var all map[string]models.UserTOTPSettings
			if err := e.store.Get(ctx, repository.TOTPSettingsRoot, &all); err != nil {
				if errors.Is(err, treestore.ErrNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "no accounts")
					return nil
				}
				return err
			}
			keys := make([]string, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				s := all[k]
				printStatus(cmd.OutOrStdout(), repository.DecodeEmailFromPath(k), models.TOTPStatus{Enabled: s.Enabled, EnabledAt: s.EnabledAt})
			}
			return nil
		},
	}
}

func newTOTPDisableCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "disable",
		Short: "Turn off two-factor login for an account that lost its authenticator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			e, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := settingsService(e).Disable(ctx, email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "two-factor login disabled for %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newTOTPCodeCmd() *cobra.Command {
	var secret string
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Print the current code for a secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logr, err := loadConfig()
			if err != nil {
				return err
			}
			code, err := service.NewTOTPService(cfg.TOTP, nil, logr).CodeAt(secret, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "Base32 secret (required)")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

func printStatus(w io.Writer, email string, status models.TOTPStatus) {
	if !status.Enabled {
		fmt.Fprintf(w, "%-32s disabled\n", email)
		return
	}
	since := "unknown"
	if status.EnabledAt != nil {
		since = status.EnabledAt.Format(time.RFC3339)
	}
	fmt.Fprintf(w, "%-32s enabled since %s\n", email, since)
}
