package sitedef

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/chelewani/sitedef/content"
)

const watchDebounce = 200 * time.Millisecond

// scanContent reads the front matter of every matching file and returns the
// published pages with normalised paths. Unreadable files go to skip.
func scanContent(fsys fs.FS, pattern string, skip content.SkipFunc) ([]IndexedPage, error) {
	found, err := content.Scan(fsys, pattern, skip)
	if err != nil {
		return nil, err
	}
	pages := make([]IndexedPage, 0, len(found))
	for _, p := range found {
		if p.Draft {
			continue
		}
		pages = append(pages, indexedPage(p))
	}
	return pages, nil
}

func indexedPage(p content.Page) IndexedPage {
	return IndexedPage{
		Path:        cleanPagePath(p.Path),
		Slug:        Slugify(p.Slug),
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		OGType:      p.Type,
	}
}

// syncFile brings the index row of one changed content file up to date.
// name is relative to the content dir, in slash form. It reports whether
// the file belongs to the index at all.
func (a *App) syncFile(ctx context.Context, name string) (bool, error) {
	if ok, _ := doublestar.Match(a.Settings.ContentPattern, name); !ok {
		return false, nil
	}
	path := cleanPagePath(content.SitePath(name))
	page, err := content.ReadPage(os.DirFS(a.Settings.ContentDir), name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return true, a.Store.DeletePage(ctx, path)
	case err != nil:
		return true, err
	case page.Draft:
		return true, a.Store.DeletePage(ctx, path)
	}
	return true, a.Store.SavePage(ctx, indexedPage(page))
}

// applyChanges updates the index for the files changed since the last
// flush. Directory changes, and removals that match no content file, fall
// back to a full Reindex since they can affect any number of pages.
func (a *App) applyChanges(ctx context.Context, changed map[string]fsnotify.Op, full bool) {
	if !full {
		for name, op := range changed {
			rel, err := filepath.Rel(a.Settings.ContentDir, name)
			if err != nil {
				full = true
				break
			}
			rel = filepath.ToSlash(rel)
			matched, err := a.syncFile(ctx, rel)
			if err != nil {
				a.Log.Warn().Err(err).Str("file", rel).Msg("skipping content file")
				continue
			}
			if !matched && op.Has(fsnotify.Remove|fsnotify.Rename) {
				full = true
				break
			}
		}
	}
	if full {
		if _, err := a.Reindex(ctx); err != nil {
			a.Log.Error().Err(err).Msg("reindex failed")
		}
		return
	}
	a.Cache.Invalidate()
	a.Log.Info().Int("files", len(changed)).Msg("content updated")
}

// Watch keeps the index in step with the content directory until ctx is
// cancelled. Bursts of events are coalesced and only the changed files are
// re-read.
func (a *App) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("sitedef: create watcher: %w", err)
	}
	defer w.Close()

	if err := addDirs(w, a.Settings.ContentDir); err != nil {
		return fmt.Errorf("sitedef: watch %s: %w", a.Settings.ContentDir, err)
	}

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	changed := make(map[string]fsnotify.Op)
	full := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := addDirs(w, ev.Name); err != nil {
						a.Log.Warn().Err(err).Str("dir", ev.Name).Msg("watch new dir")
					}
					full = true
				}
			}
			a.Log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("content changed")
			changed[ev.Name] |= ev.Op
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.Log.Error().Err(err).Msg("watcher error")
		case <-timer.C:
			a.applyChanges(ctx, changed, full)
			clear(changed)
			full = false
		}
	}
}

func addDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
