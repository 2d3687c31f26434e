package main

import (
	"github.com/spf13/cobra"

	"github.com/chelewani/sitedef"
)

var headPath string

var headCmd = &cobra.Command{
	Use:   "head",
	Short: "Render the resolved <head> tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configFor(cmd, headPath)
		if err != nil {
			return err
		}
		return sitedef.HeadTags(cfg).Render(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	headCmd.Flags().StringVarP(&headPath, "path", "p", "", "page path to render for")
	rootCmd.AddCommand(headCmd)
}
