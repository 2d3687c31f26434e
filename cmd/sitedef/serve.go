package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a preview of the configuration and page heads",
	Long: `Serve the configuration tree, the indexed pages and their rendered heads.
The server binds HOST:PORT, or SITEDEF_ADDR when both are unset. With
--watch the content directory is reindexed on change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Reindex(cmd.Context()); err != nil {
			a.Log.Warn().Err(err).Msg("initial index failed")
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error { return a.Start(ctx) })
		if serveWatch {
			g.Go(func() error { return a.Watch(ctx) })
		}
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reindex content on change")
	rootCmd.AddCommand(serveCmd)
}
