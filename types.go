package sitedef

// MetaKind identifies which attribute names a <meta> tag.
type MetaKind string

const (
	KindName     MetaKind = "name"
	KindProperty MetaKind = "property"
	KindCharset  MetaKind = "charset"
)

// MetaEntry is one discoverable page metadata record: a social-card tag,
// a charset declaration, a viewport directive and so on.
//
// HID is the optional override handle. Entries sharing a HID occupy the
// same logical slot and the later one wins.
type MetaEntry struct {
	Kind  MetaKind
	Key   string // empty for KindCharset
	Value string
	HID   string
}

// Name returns a name-based meta entry.
func Name(key, value string) MetaEntry {
	return MetaEntry{Kind: KindName, Key: key, Value: value}
}

// Property returns a property-based (OpenGraph) meta entry.
func Property(key, value string) MetaEntry {
	return MetaEntry{Kind: KindProperty, Key: key, Value: value}
}

// Charset returns a charset declaration.
func Charset(value string) MetaEntry {
	return MetaEntry{Kind: KindCharset, Value: value}
}

// WithHID returns a copy of e carrying the given override handle.
func (e MetaEntry) WithHID(hid string) MetaEntry {
	e.HID = hid
	return e
}

func (e MetaEntry) slot() string { return e.HID }

// LinkEntry describes a <link> tag.
type LinkEntry struct {
	HID  string `json:"hid,omitempty" yaml:"hid,omitempty"`
	Rel  string `json:"rel" yaml:"rel"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Href string `json:"href" yaml:"href"`
}

func (l LinkEntry) slot() string { return l.HID }

// ScriptEntry describes an external <script> tag.
type ScriptEntry struct {
	Src   string `json:"src" yaml:"src"`
	Async bool   `json:"async,omitempty" yaml:"async,omitempty"`
}

// PageMeta carries per-page OpenGraph and SEO metadata into SiteMeta.
type PageMeta struct {
	Title       string
	Description string
	Path        string // joined onto the base URL for og:url
	OGType      string // "website" or "article"
	Image       string
}
