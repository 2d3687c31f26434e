package sitedef

import (
	"bufio"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// HeadTags returns a component that writes the <head> contents for cfg. Meta
// and link entries are resolved first, so for each HID only the last
// declared entry is written.
func HeadTags(cfg *Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bw := bufio.NewWriter(w)
		writeHead(bw, cfg)
		return bw.Flush()
	})
}

// Page returns a component writing a minimal HTML document: the resolved
// head and an empty body. It is what the preview server serves.
func Page(cfg *Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bw := bufio.NewWriter(w)
		bw.WriteString("<!DOCTYPE html>\n<html")
		if lang := cfg.Head.HTMLAttrs["lang"]; lang != "" {
			attr(bw, "lang", lang)
		}
		bw.WriteString(">\n<head>\n")
		writeHead(bw, cfg)
		bw.WriteString("</head>\n<body></body>\n</html>\n")
		return bw.Flush()
	})
}

func writeHead(w *bufio.Writer, cfg *Config) {
	w.WriteString("<title>" + html.EscapeString(cfg.Head.Title) + "</title>\n")
	for _, m := range ResolveMeta(cfg.Head.Meta) {
		w.WriteString("<meta")
		if m.HID != "" {
			attr(w, "data-hid", m.HID)
		}
		if m.Kind == KindCharset {
			attr(w, "charset", m.Value)
		} else {
			kind := m.Kind
			if kind == "" {
				kind = KindName
			}
			attr(w, string(kind), m.Key)
			attr(w, "content", m.Value)
		}
		w.WriteString(">\n")
	}
	for _, l := range ResolveLinks(cfg.Head.Link) {
		w.WriteString("<link")
		if l.HID != "" {
			attr(w, "data-hid", l.HID)
		}
		attr(w, "rel", l.Rel)
		if l.Type != "" {
			attr(w, "type", l.Type)
		}
		attr(w, "href", l.Href)
		w.WriteString(">\n")
	}
	for _, s := range cfg.Head.Script {
		w.WriteString("<script")
		attr(w, "src", s.Src)
		if s.Async {
			w.WriteString(" async")
		}
		w.WriteString("></script>\n")
	}
}

func attr(w *bufio.Writer, name, value string) {
	w.WriteString(" " + name + `="` + html.EscapeString(value) + `"`)
}
