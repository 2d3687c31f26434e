// Package sitedef defines the Chelewani blog for its static-site pipeline:
// the site metadata, the content pipeline options and the utility-class
// generator declaration.
//
// The core is Build, a single-shot factory that merges a dynamically
// generated metadata sequence ahead of the static declarations and returns
// an immutable configuration tree. Around it the package keeps a small
// content index (front matter only) so per-page metadata can be generated,
// plus a preview server for inspecting the result.
package sitedef

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/chelewani/sitedef/logger"
)

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the App logger (default: discard).
func WithLogger(l *logger.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// App ties the site declaration to the content index and the preview
// server.
type App struct {
	Site     Site
	Env      Env
	Settings Settings
	Echo     *echo.Echo
	Store    *Store
	Cache    *PageCache
	Log      *logger.Logger

	builder *Builder
}

// New creates an App. Call Open before using the content index.
func New(site Site, env Env, settings Settings, opts ...Option) *App {
	a := &App{
		Site:     site,
		Env:      env,
		Settings: settings,
		Echo:     echo.New(),
		Log:      logger.Nop(),
		builder:  NewBuilder(site, env),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open initializes the content index store and cache.
func (a *App) Open() error {
	store, err := NewStore(a.Settings.DatabasePath)
	if err != nil {
		return fmt.Errorf("sitedef: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPageCache(store, a.Settings.CacheTTL)
	return nil
}

// Close cleans up resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// Defaults returns the SiteMeta fallbacks. The site URL falls back to
// BASE_URL.
func (a *App) Defaults() SiteDefaults {
	d := a.Site.Defaults
	if d.URL == "" {
		d.URL = a.Env.BaseURL
	}
	return d
}

// PageMeta returns the dynamic metadata sequence for the page at path. An
// empty path yields the site-wide sequence. The root page resolves even
// when it is not indexed.
func (a *App) PageMeta(ctx context.Context, path string) ([]MetaEntry, error) {
	if path == "" {
		return SiteMeta(a.Defaults(), PageMeta{}), nil
	}
	path = cleanPagePath(path)
	page, err := a.Cache.GetPage(ctx, path)
	if errors.Is(err, ErrNotFound) && path == "/" {
		return SiteMeta(a.Defaults(), PageMeta{Path: "/"}), nil
	}
	if err != nil {
		return nil, err
	}
	return SiteMeta(a.Defaults(), page.Meta()), nil
}

// ConfigFor builds the configuration tree with the dynamic metadata of the
// page at path.
func (a *App) ConfigFor(ctx context.Context, path string) (*Config, error) {
	meta, err := a.PageMeta(ctx, path)
	if err != nil {
		return nil, err
	}
	return a.builder.Build(meta), nil
}

// Addr returns the preview server address: HOST and PORT when either is
// set, otherwise the configured settings address.
func (a *App) Addr() string {
	if a.Env.Host == "" && a.Env.Port == "" {
		return a.Settings.Addr
	}
	return net.JoinHostPort(a.Env.Host, a.Env.Port)
}

// Start serves the preview server until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.setupMiddleware()
	a.setupRoutes()

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", a.Addr()).Msg("preview server listening")
		errCh <- a.Echo.Start(a.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		return a.Echo.Shutdown(context.Background())
	}
}

// Reindex scans the content directory and replaces the index with every
// non-draft page found. Files that fail to parse are logged and left out.
func (a *App) Reindex(ctx context.Context) (int, error) {
	if _, err := os.Stat(a.Settings.ContentDir); err != nil {
		return 0, fmt.Errorf("sitedef: content dir: %w", err)
	}
	skip := func(name string, err error) {
		a.Log.Warn().Err(err).Str("file", name).Msg("skipping content file")
	}
	pages, err := scanContent(os.DirFS(a.Settings.ContentDir), a.Settings.ContentPattern, skip)
	if err != nil {
		return 0, fmt.Errorf("sitedef: reindex: %w", err)
	}
	if err := a.Store.ReplacePages(ctx, pages); err != nil {
		return 0, fmt.Errorf("sitedef: reindex: %w", err)
	}
	a.Cache.Invalidate()
	a.Log.Info().Int("pages", len(pages)).Str("dir", a.Settings.ContentDir).Msg("content indexed")
	return len(pages), nil
}
