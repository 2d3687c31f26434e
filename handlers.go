package sitedef

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chelewani/sitedef/logger"
)

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/healthz", handleHealth)
	e.GET("/_site/config.json", a.handleConfig)
	e.GET("/_site/pages", a.handlePages)
	e.GET("/_site/head", a.handleHead)
	e.GET("/*", a.handlePage)
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// configFor maps a missing page to a 404.
func (a *App) configFor(c echo.Context, path string) (*Config, error) {
	cfg, err := a.ConfigFor(c.Request().Context(), path)
	if errors.Is(err, ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "page not indexed: "+path)
	}
	return cfg, err
}

func (a *App) handleConfig(c echo.Context) error {
	cfg, err := a.configFor(c, c.QueryParam("path"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

func (a *App) handlePages(c echo.Context) error {
	pages, err := a.Cache.ListPages(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]map[string]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, map[string]string{
			"path":        p.Path,
			"title":       p.Title,
			"description": p.Description,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (a *App) handleHead(c echo.Context) error {
	cfg, err := a.configFor(c, c.QueryParam("path"))
	if err != nil {
		return err
	}
	return Render(c, HeadTags(cfg))
}

// handlePage serves the page shell. Unindexed paths get the site-wide shell
// with a 404 so the head can still be inspected.
func (a *App) handlePage(c echo.Context) error {
	ctx := c.Request().Context()
	path := c.Request().URL.Path
	cfg, err := a.ConfigFor(ctx, path)
	if errors.Is(err, ErrNotFound) {
		logger.FromContext(ctx).Debug().Str("path", path).Msg("page not indexed")
		if cfg, err = a.ConfigFor(ctx, ""); err != nil {
			return err
		}
		return RenderStatus(c, http.StatusNotFound, Page(cfg))
	}
	if err != nil {
		return err
	}
	return Render(c, Page(cfg))
}
