package sitedef

import (
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// TailwindConfig declares the utility-class generator's inputs: the files
// it scans for class names and the theme extensions.
type TailwindConfig struct {
	Content    []string            `yaml:"content"`
	FontFamily map[string][]string `yaml:"fontFamily"`
	Plugins    []string            `yaml:"plugins"`
}

// DefaultTailwind returns the blog's utility-class generator declaration.
func DefaultTailwind() TailwindConfig {
	return TailwindConfig{
		Content: []string{
			"./components/**/*.{js,vue,ts}",
			"./layouts/**/*.vue",
			"./pages/**/*.vue",
			"./plugins/**/*.{js,ts}",
			"./nuxt.config.{js,ts}",
		},
		FontFamily: map[string][]string{
			"serif": {"Merriweather", "Georgia"},
			"mono":  {"DM Mono", "monospace"},
		},
		Plugins: []string{},
	}
}

// Document returns the declaration in the generator's config shape.
func (t TailwindConfig) Document() map[string]any {
	families := make(map[string][]string, len(t.FontFamily))
	for k, v := range t.FontFamily {
		families[k] = slices.Clone(v)
	}
	plugins := slices.Clone(t.Plugins)
	if plugins == nil {
		plugins = []string{}
	}
	return map[string]any{
		"content": slices.Clone(t.Content),
		"theme": map[string]any{
			"extend": map[string]any{"fontFamily": families},
		},
		"plugins": plugins,
	}
}

// ContentFiles lists the files under fsys matched by the content globs,
// sorted and without duplicates.
func (t TailwindConfig) ContentFiles(fsys fs.FS) ([]string, error) {
	seen := make(map[string]struct{})
	for _, pattern := range t.Content {
		pattern = strings.TrimPrefix(pattern, "./")
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("sitedef: tailwind glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}
	var files []string
	for m := range seen {
		files = append(files, m)
	}
	slices.Sort(files)
	return files, nil
}
