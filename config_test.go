package sitedef

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFrom(t *testing.T) {
	env, err := EnvFrom(map[string]string{
		"HOST":     "0.0.0.0",
		"PORT":     "not-a-number",
		"BASE_URL": "https://example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, Env{Host: "0.0.0.0", Port: "not-a-number", BaseURL: "https://example.com"}, env)
}

func TestLoadEnvUnset(t *testing.T) {
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("BASE_URL", "")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, Env{}, env)
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(Settings{})
	require.NoError(t, err)

	assert.Equal(t, "content", s.ContentDir)
	assert.Equal(t, "**/*.md", s.ContentPattern)
	assert.Equal(t, "data/content.db", s.DatabasePath)
	assert.Equal(t, ":3000", s.Addr)
	assert.Equal(t, 5*time.Minute, s.CacheTTL)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoadSettingsEnvAndOverrides(t *testing.T) {
	t.Setenv("SITEDEF_CONTENT_DIR", "posts")
	t.Setenv("SITEDEF_CACHE_TTL", "30s")

	s, err := LoadSettings(Settings{DatabasePath: "/tmp/x.db"})
	require.NoError(t, err)

	assert.Equal(t, "posts", s.ContentDir)
	assert.Equal(t, 30*time.Second, s.CacheTTL)
	assert.Equal(t, "/tmp/x.db", s.DatabasePath)
}

func TestLoadSettingsBadDuration(t *testing.T) {
	t.Setenv("SITEDEF_CACHE_TTL", "soon")

	_, err := LoadSettings(Settings{})
	assert.Error(t, err)
}

func TestLoadSettingsNegativeTTL(t *testing.T) {
	_, err := LoadSettings(Settings{CacheTTL: -time.Second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative cache ttl")
}

func TestDefaultSiteIsFresh(t *testing.T) {
	a := DefaultSite()
	a.Meta[0] = Name("x", "y")
	a.Tailwind.FontFamily["serif"][0] = "Comic Sans"

	b := DefaultSite()
	assert.Equal(t, Charset("utf-8"), b.Meta[0])
	assert.Equal(t, "Merriweather", b.Tailwind.FontFamily["serif"][0])
}

func TestParseSiteFillsDefaults(t *testing.T) {
	src := `
title: Another Blog
meta:
  - charset: utf-8
  - hid: description
    name: description
    content: Custom
defaults:
  title: Another
`
	site, err := ParseSite([]byte(src))
	require.NoError(t, err)

	def := DefaultSite()
	assert.Equal(t, "Another Blog", site.Title)
	assert.Equal(t, []MetaEntry{Charset("utf-8"), Name("description", "Custom").WithHID("description")}, site.Meta)
	assert.Equal(t, "Another", site.Defaults.Title)
	assert.Equal(t, def.Defaults.Description, site.Defaults.Description)
	assert.Equal(t, def.Lang, site.Lang)
	assert.Equal(t, def.Modules, site.Modules)
	assert.Equal(t, def.PostCSS, site.PostCSS)
	assert.Equal(t, def.Tailwind.Content, site.Tailwind.Content)
	assert.True(t, site.SSR)
}

func TestParseSiteClearsDefaults(t *testing.T) {
	site, err := ParseSite([]byte("ssr: false\ncomponents: false\nmeta: []\nscripts: []\n"))
	require.NoError(t, err)

	assert.False(t, site.SSR)
	assert.False(t, site.Components)
	assert.Empty(t, site.Meta)
	assert.Empty(t, site.Scripts)
	assert.Equal(t, DefaultSite().Links, site.Links)
}

func TestLoadSiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lang: de-DE\n"), 0o644))

	site, err := LoadSiteFile(path)
	require.NoError(t, err)
	assert.Equal(t, "de-DE", site.Lang)
	assert.Equal(t, DefaultSite().Title, site.Title)
}

func TestLoadSiteFileErrors(t *testing.T) {
	_, err := LoadSiteFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseSite([]byte("meta:\n  - content: no key\n"))
	assert.Error(t, err)
}
