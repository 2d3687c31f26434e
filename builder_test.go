package sitedef

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuildMetaIsDynamicThenStatic(t *testing.T) {
	static := DefaultSite().Meta
	dynamic := SiteMeta(SiteDefaults{Title: "T"}, PageMeta{})

	cfg := Build(Env{}, dynamic)

	require.Len(t, cfg.Head.Meta, len(dynamic)+len(static))
	assert.Equal(t, dynamic, cfg.Head.Meta[:len(dynamic)])
	assert.Equal(t, static, cfg.Head.Meta[len(dynamic):])
}

func TestBuildEmptyDynamic(t *testing.T) {
	cfg := Build(Env{}, nil)
	assert.Equal(t, DefaultSite().Meta, cfg.Head.Meta)
}

func TestBuildStaticDescriptionOverridesLast(t *testing.T) {
	cfg := Build(Env{}, SiteMeta(SiteDefaults{Description: "page"}, PageMeta{}))

	var positions []int
	for i, m := range cfg.Head.Meta {
		if m.HID == "description" {
			positions = append(positions, i)
		}
	}
	require.Len(t, positions, 3)
	last := cfg.Head.Meta[positions[2]]
	assert.True(t, strings.HasPrefix(last.Value, "Coding and application architectural solutions."))

	for _, m := range ResolveMeta(cfg.Head.Meta) {
		if m.HID == "description" {
			assert.Equal(t, last.Value, m.Value)
		}
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	env := Env{Host: "0.0.0.0", Port: "3000", BaseURL: "https://example.com"}
	dynamic := []MetaEntry{Name("a", "1")}

	first := Build(env, dynamic)
	second := Build(env, dynamic)

	assert.Equal(t, first, second)
}

func TestBuildResultsAreIndependent(t *testing.T) {
	b := NewBuilder(DefaultSite(), Env{})
	first := b.Build(nil)
	first.Head.Meta[0].Value = "mutated"
	first.Head.Link[1].Href = "mutated"
	first.CSS[0] = "mutated"
	first.Axios["x"] = 1

	second := b.Build(nil)
	assert.Equal(t, "utf-8", second.Head.Meta[0].Value)
	assert.Equal(t, "/favicon.ico", second.Head.Link[1].Href)
	assert.Equal(t, "@/assets/css/main.css", second.CSS[0])
	assert.Empty(t, second.Axios)
}

func TestBuildUnsetEnvPassesThrough(t *testing.T) {
	env, err := EnvFrom(map[string]string{})
	require.NoError(t, err)

	cfg := Build(env, nil)

	assert.Empty(t, cfg.Server.Host)
	assert.Empty(t, cfg.Server.Port)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, LinkEntry{HID: "canonical", Rel: "canonical"}, cfg.Head.Link[0])
}

func TestBuildCanonicalFromBaseURL(t *testing.T) {
	env, err := EnvFrom(map[string]string{"BASE_URL": "https://example.com", "HOST": "127.0.0.1", "PORT": "8080"})
	require.NoError(t, err)

	cfg := Build(env, nil)

	assert.Equal(t, "https://example.com", cfg.BaseURL)
	assert.Contains(t, cfg.Head.Link, LinkEntry{HID: "canonical", Rel: "canonical", Href: "https://example.com"})
	assert.Equal(t, Server{Host: "127.0.0.1", Port: "8080"}, cfg.Server)
}

func TestBuildStaticDeclarations(t *testing.T) {
	cfg := Build(Env{}, nil)

	assert.True(t, cfg.SSR)
	assert.Equal(t, "static", cfg.Target)
	assert.True(t, cfg.Components)
	assert.Equal(t, "en-US", cfg.Head.HTMLAttrs["lang"])
	require.Len(t, cfg.Head.Script, 1)
	assert.True(t, cfg.Head.Script[0].Async)
	assert.Contains(t, cfg.Head.Script[0].Src, "googletagmanager.com")
	assert.Equal(t, []string{"@/assets/css/main.css"}, cfg.CSS)
	assert.Equal(t, []string{"@nuxt/postcss8", "@nuxtjs/moment"}, cfg.BuildModules)
	assert.Equal(t, []string{"@nuxtjs/axios", "@nuxt/content"}, cfg.Modules)
	assert.Equal(t, "prism-themes/themes/prism-atom-dark.css",
		cfg.Content["markdown"].(map[string]any)["prism"].(map[string]any)["theme"])

	var rels []string
	for _, l := range cfg.Head.Link {
		rels = append(rels, l.Rel)
	}
	assert.Equal(t, []string{"canonical", "icon", "stylesheet"}, rels)
}

func TestBuildJSONShape(t *testing.T) {
	cfg := Build(Env{BaseURL: "https://example.com"}, nil)

	b, err := json.Marshal(cfg)
	require.NoError(t, err)
	s := string(b)

	assert.Contains(t, s, `"plugins":{"tailwindcss":{},"autoprefixer":{}}`)
	assert.Less(t, strings.Index(s, `"tailwindcss"`), strings.Index(s, `"autoprefixer"`))
	assert.Contains(t, s, `"baseUrl":"https://example.com"`)
	assert.Contains(t, s, `{"charset":"utf-8"}`)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(b, &generic))
	head := generic["head"].(map[string]any)
	assert.Equal(t, "Chelewani - We spread the solutions [...]", head["title"])
}

func TestPluginChainYAMLKeepsOrder(t *testing.T) {
	chain := PluginChain{{Name: "zeta"}, {Name: "alpha", Options: map[string]any{"grid": true}}}

	out, err := yaml.Marshal(chain)
	require.NoError(t, err)

	s := string(out)
	assert.Less(t, strings.Index(s, "zeta"), strings.Index(s, "alpha"))
	assert.Contains(t, s, "grid: true")
}
