package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chelewani/sitedef"
)

var (
	buildFormat string
	buildPath   string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Print the configuration tree",
	Long: `Print the configuration tree. With --path the dynamic metadata of that
indexed page is merged in; otherwise the site-wide metadata is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configFor(cmd, buildPath)
		if err != nil {
			return err
		}
		return writeConfig(cmd.OutOrStdout(), cfg, buildFormat)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "json", "output format: json or yaml")
	buildCmd.Flags().StringVarP(&buildPath, "path", "p", "", "page path to build for")
	rootCmd.AddCommand(buildCmd)
}

func configFor(cmd *cobra.Command, path string) (*sitedef.Config, error) {
	if path == "" {
		a, err := newApp()
		if err != nil {
			return nil, err
		}
		return a.ConfigFor(cmd.Context(), "")
	}
	a, err := openApp()
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return a.ConfigFor(cmd.Context(), path)
}

func writeConfig(w io.Writer, cfg *sitedef.Config, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
