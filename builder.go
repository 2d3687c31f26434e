package sitedef

import (
	"bytes"
	"encoding/json"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config is the configuration tree handed to the static-site pipeline.
type Config struct {
	SSR          bool     `json:"ssr" yaml:"ssr"`
	Target       string   `json:"target" yaml:"target"`
	Server       Server   `json:"server" yaml:"server"`
	Head         Head     `json:"head" yaml:"head"`
	CSS          []string `json:"css" yaml:"css"`
	Plugins      []string `json:"plugins" yaml:"plugins"`
	Components   bool     `json:"components" yaml:"components"`
	BuildModules []string `json:"buildModules" yaml:"buildModules"`
	Modules      []string `json:"modules" yaml:"modules"`
	// Module options sit at the top level, keyed by the module's short name.
	Axios   map[string]any `json:"axios" yaml:"axios"`
	Content map[string]any `json:"content" yaml:"content"`
	Build   BuildOptions   `json:"build" yaml:"build"`
	BaseURL string         `json:"baseUrl" yaml:"baseUrl"`
}

// Server is the host/port pair, taken verbatim from the environment.
type Server struct {
	Host string `json:"host" yaml:"host"`
	Port string `json:"port" yaml:"port"`
}

// Head holds the global page head declarations.
type Head struct {
	Script    []ScriptEntry     `json:"script" yaml:"script"`
	HTMLAttrs map[string]string `json:"htmlAttrs" yaml:"htmlAttrs"`
	Title     string            `json:"title" yaml:"title"`
	Meta      []MetaEntry       `json:"meta" yaml:"meta"`
	Link      []LinkEntry       `json:"link" yaml:"link"`
}

// BuildOptions holds the build-tool settings.
type BuildOptions struct {
	PostCSS PostCSS `json:"postcss" yaml:"postcss"`
}

// PostCSS holds the CSS post-processing plugin chain.
type PostCSS struct {
	Plugins PluginChain `json:"plugins" yaml:"plugins"`
}

// Plugin is one CSS post-processing pass and its options.
type Plugin struct {
	Name    string
	Options map[string]any
}

// PluginChain is an ordered map of plugin name to options. It serializes as
// an object whose keys keep chain order.
type PluginChain []Plugin

// MarshalJSON writes the chain as an object in chain order.
func (pc PluginChain) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		opts := p.Options
		if opts == nil {
			opts = map[string]any{}
		}
		val, err := json.Marshal(opts)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the chain as a mapping in chain order.
func (pc PluginChain) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range pc {
		opts := p.Options
		if opts == nil {
			opts = map[string]any{}
		}
		var val yaml.Node
		if err := val.Encode(opts); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.Name},
			&val,
		)
	}
	return node, nil
}

// Builder assembles Config trees from a site declaration and an Env.
type Builder struct {
	site Site
	env  Env
}

// NewBuilder returns a Builder for the given declarations and environment.
func NewBuilder(site Site, env Env) *Builder {
	return &Builder{site: site, env: env}
}

// Build returns the configuration tree for the default site declarations.
func Build(env Env, dynamic []MetaEntry) *Config {
	return NewBuilder(DefaultSite(), env).Build(dynamic)
}

// Build merges the dynamic metadata sequence ahead of the static one and
// assembles a fresh Config. Nothing in the result is shared with the
// builder or with previous results. Empty environment values pass through.
func (b *Builder) Build(dynamic []MetaEntry) *Config {
	s := b.site

	links := make([]LinkEntry, 0, len(s.Links)+1)
	links = append(links, LinkEntry{HID: "canonical", Rel: "canonical", Href: b.env.BaseURL})
	links = append(links, s.Links...)

	chain := make(PluginChain, 0, len(s.PostCSS))
	for _, name := range s.PostCSS {
		chain = append(chain, Plugin{Name: name, Options: map[string]any{}})
	}

	return &Config{
		SSR:    s.SSR,
		Target: s.Target,
		Server: Server{Host: b.env.Host, Port: b.env.Port},
		Head: Head{
			Script:    cloneOrEmpty(s.Scripts),
			HTMLAttrs: map[string]string{"lang": s.Lang},
			Title:     s.Title,
			Meta:      MergeMeta(dynamic, s.Meta),
			Link:      links,
		},
		CSS:          cloneOrEmpty(s.CSS),
		Plugins:      cloneOrEmpty(s.Plugins),
		Components:   s.Components,
		BuildModules: cloneOrEmpty(s.BuildModules),
		Modules:      cloneOrEmpty(s.Modules),
		Axios:        map[string]any{},
		Content: map[string]any{
			"markdown": map[string]any{
				"prism": map[string]any{"theme": s.PrismTheme},
			},
		},
		Build:   BuildOptions{PostCSS: PostCSS{Plugins: chain}},
		BaseURL: b.env.BaseURL,
	}
}

func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
