package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chelewani/sitedef"
)

var cardCmd = &cobra.Command{
	Use:   "card <src> <dst>",
	Short: "Make a social card image",
	Long: fmt.Sprintf(`Scale and crop src to the %dx%d social card size and write it to dst
as JPEG.`, sitedef.CardWidth, sitedef.CardHeight),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		b, err := sitedef.MakeCard(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := os.WriteFile(args[1], b, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cardCmd)
}
