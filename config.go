package sitedef

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Env holds the environment values the site definition consumes. No
// defaults are applied: unset variables stay empty and are passed through
// unchanged.
type Env struct {
	Host    string `env:"HOST"`
	Port    string `env:"PORT"`
	BaseURL string `env:"BASE_URL"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("sitedef: parse env: %w", err)
	}
	return e, nil
}

// EnvFrom reads Env from an explicit variable map instead of the process
// environment.
func EnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("sitedef: parse env: %w", err)
	}
	return e, nil
}

// Settings configures the sitedef tool itself (content index, preview
// server, logging). Unlike Env these carry defaults.
type Settings struct {
	ContentDir     string        `env:"SITEDEF_CONTENT_DIR" envDefault:"content"`
	ContentPattern string        `env:"SITEDEF_CONTENT_PATTERN" envDefault:"**/*.md"`
	DatabasePath   string        `env:"SITEDEF_DATABASE_PATH" envDefault:"data/content.db"`
	Addr           string        `env:"SITEDEF_ADDR" envDefault:":3000"`
	CacheTTL       time.Duration `env:"SITEDEF_CACHE_TTL" envDefault:"5m"`
	LogLevel       string        `env:"SITEDEF_LOG_LEVEL" envDefault:"info"`
	SiteFile       string        `env:"SITEDEF_SITE_FILE"`
}

// LoadSettings reads Settings from the process environment and applies
// non-empty fields of overrides on top (typically command-line flags).
func LoadSettings(overrides Settings) (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("sitedef: parse settings: %w", err)
	}
	if err := mergo.Merge(&s, overrides, mergo.WithOverride); err != nil {
		return Settings{}, fmt.Errorf("sitedef: merge settings: %w", err)
	}
	return s, s.validate()
}

func (s Settings) validate() error {
	var err error
	if s.ContentDir == "" {
		err = errors.Join(err, errors.New("content dir is empty"))
	}
	if s.DatabasePath == "" {
		err = errors.Join(err, errors.New("database path is empty"))
	}
	if s.CacheTTL < 0 {
		err = errors.Join(err, fmt.Errorf("negative cache ttl %s", s.CacheTTL))
	}
	if err != nil {
		return fmt.Errorf("sitedef: invalid settings: %w", err)
	}
	return nil
}

// Site holds the static declarations of the blog.
type Site struct {
	Title        string        `yaml:"title"`
	Lang         string        `yaml:"lang"`
	SSR          bool          `yaml:"ssr"`
	Target       string        `yaml:"target"`
	Scripts      []ScriptEntry `yaml:"scripts"`
	Meta         []MetaEntry   `yaml:"meta"`
	Links        []LinkEntry   `yaml:"links"`
	CSS          []string      `yaml:"css"`
	Plugins      []string      `yaml:"plugins"`
	Components   bool          `yaml:"components"`
	BuildModules []string      `yaml:"buildModules"`
	Modules      []string      `yaml:"modules"`
	PrismTheme   string        `yaml:"prismTheme"`
	PostCSS      []string      `yaml:"postcss"`

	Defaults SiteDefaults   `yaml:"defaults"`
	Tailwind TailwindConfig `yaml:"tailwind"`
}

// DefaultSite returns the blog's built-in declarations. Each call returns
// fresh slices.
func DefaultSite() Site {
	return Site{
		Title:  "Chelewani - We spread the solutions [...]",
		Lang:   "en-US",
		SSR:    true,
		Target: "static",
		Scripts: []ScriptEntry{
			{Src: "https://www.googletagmanager.com/gtag/js?id=G-2RQQZS4PHL", Async: true},
		},
		Meta: []MetaEntry{
			Charset("utf-8"),
			Name("HandheldFriendly", "True"),
			Name("viewport", "width=device-width, initial-scale=1"),
			Property("og:site_name", "Chelewani"),
			Name("description", "").WithHID("description"),
			Name("format-detection", "telephone=no"),
			Name("description", "Coding and application architectural solutions. We spread the solutions like [...]. ").WithHID("description"),
			Property("og:image:width", "740"),
			Property("og:image:height", "300"),
			Name("twitter:site", "@kamlfuz"),
			Name("twitter:card", "summary_large_image"),
		},
		Links: []LinkEntry{
			{Rel: "icon", Type: "image/x-icon", Href: "/favicon.ico"},
			{Rel: "stylesheet", Href: "https://fonts.googleapis.com/css2?family=Merriweather:wght@300;400&display=swap&family=DM+Mono&display=swap"},
		},
		CSS:          []string{"@/assets/css/main.css"},
		Plugins:      []string{},
		Components:   true,
		BuildModules: []string{"@nuxt/postcss8", "@nuxtjs/moment"},
		Modules:      []string{"@nuxtjs/axios", "@nuxt/content"},
		PrismTheme:   "prism-themes/themes/prism-atom-dark.css",
		PostCSS:      []string{"tailwindcss", "autoprefixer"},
		Defaults: SiteDefaults{
			Title:       "Chelewani",
			Description: "Coding and application architectural solutions.",
			OGType:      "website",
		},
		Tailwind: DefaultTailwind(),
	}
}

// LoadSiteFile reads a YAML site declaration over DefaultSite. Keys the
// file sets replace the defaults, including empty lists and false.
func LoadSiteFile(path string) (Site, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("sitedef: read site file: %w", err)
	}
	return ParseSite(b)
}

// ParseSite decodes a YAML site declaration over DefaultSite.
func ParseSite(b []byte) (Site, error) {
	s := DefaultSite()
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Site{}, fmt.Errorf("sitedef: parse site file: %w", err)
	}
	return s, nil
}
