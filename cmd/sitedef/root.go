package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chelewani/sitedef"
	"github.com/chelewani/sitedef/logger"
)

var (
	flags   sitedef.Settings
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sitedef",
	Short: "Site definition for the Chelewani blog",
	Long: `sitedef assembles the configuration tree handed to the static-site
pipeline: head metadata, stylesheets, modules and the CSS plugin chain.
HOST, PORT and BASE_URL are read from the environment and passed through.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.SiteFile, "site", "", "YAML file overriding the built-in site declarations")
	pf.StringVar(&flags.ContentDir, "content", "", "content directory (default from SITEDEF_CONTENT_DIR)")
	pf.StringVar(&flags.DatabasePath, "db", "", "content index database (default from SITEDEF_DATABASE_PATH)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "log level (default from SITEDEF_LOG_LEVEL)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// newApp loads settings, environment and site declarations. The content
// index is not opened.
func newApp() (*sitedef.App, error) {
	overrides := flags
	if verbose {
		overrides.LogLevel = "debug"
	}
	settings, err := sitedef.LoadSettings(overrides)
	if err != nil {
		return nil, err
	}
	env, err := sitedef.LoadEnv()
	if err != nil {
		return nil, err
	}
	site := sitedef.DefaultSite()
	if settings.SiteFile != "" {
		if site, err = sitedef.LoadSiteFile(settings.SiteFile); err != nil {
			return nil, err
		}
	}
	log := logger.NewLogger("sitedef", settings.LogLevel)
	return sitedef.New(site, env, settings, sitedef.WithLogger(log)), nil
}

// openApp is newApp with the content index opened.
func openApp() (*sitedef.App, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	if err := a.Open(); err != nil {
		return nil, err
	}
	return a, nil
}
