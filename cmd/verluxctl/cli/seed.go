package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verluxstands/verlux-api/internal/repository"
	"github.com/verluxstands/verlux-api/internal/service"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write built-in content to the tree store",
	}
	cmd.AddCommand(newSeedSEOCmd())
	return cmd
}

func newSeedSEOCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seo",
		Short: "Store the default SEO record of every static page whose slug is free",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			e, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			svc := service.NewSEOService(repository.NewSEORepository(e.store), nil, service.SEOConfig{
				SiteName: e.cfg.Site.Name,
				BaseURL:  e.cfg.Site.BaseURL,
			}, nil, e.logger)
			written, err := svc.SeedDefaults(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d SEO page(s)\n", written)
			return nil
		},
	}
}
