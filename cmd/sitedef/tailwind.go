package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tailwindConfig bool

var tailwindCmd = &cobra.Command{
	Use:   "tailwind [dir]",
	Short: "List the files the utility-class generator scans",
	Long: `List the files under dir (default ".") matched by the utility-class
generator's content globs. With --config print the declaration instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		tw := a.Site.Tailwind
		out := cmd.OutOrStdout()

		if tailwindConfig {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(tw.Document())
		}

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		files, err := tw.ContentFiles(os.DirFS(dir))
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(out, f)
		}
		return nil
	},
}

func init() {
	tailwindCmd.Flags().BoolVar(&tailwindConfig, "config", false, "print the generator declaration")
	rootCmd.AddCommand(tailwindCmd)
}
