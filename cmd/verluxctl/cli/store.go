package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verluxstands/verlux-api/internal/repository"
	"github.com/verluxstands/verlux-api/internal/service"
)

func newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the CMS tree store",
	}
	cmd.AddCommand(newStoreCheckCmd())
	return cmd
}

func newStoreCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Ping the tree store and read the SEO pages",
		Example: `  verluxctl store check
  TREE_STORE_DRIVER=postgres verluxctl store check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			e, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			start := time.Now()
			if err := e.store.Ping(ctx); err != nil {
				return fmt.Errorf("ping %s store: %w", e.cfg.TreeStore.Driver, err)
			}
			fmt.Fprintf(out, "driver:     %s\n", e.cfg.TreeStore.Driver)
			fmt.Fprintf(out, "ping:       %s\n", time.Since(start).Round(time.Millisecond))

			pages, err := repository.NewSEORepository(e.store).List(ctx)
			if err != nil {
				return fmt.Errorf("read %s: %w", repository.SEOPagesRoot, err)
			}
			fmt.Fprintf(out, "seo pages:  %d\n", len(pages))
			for _, p := range pages {
				v := service.ValidateSEO(p)
				fmt.Fprintf(out, "  %-24s score=%3d errors=%d warnings=%d\n", p.Slug, v.Score, len(v.Errors), len(v.Warnings))
			}
			if len(pages) == 0 {
				fmt.Fprintln(out, "no SEO pages stored; run `verluxctl seed seo`")
			}
			return nil
		},
	}
}
