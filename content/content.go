// Package content indexes the metadata of markdown content files. It reads
// YAML front matter only; converting markdown to HTML is left to the site
// pipeline.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrUnterminatedFrontMatter is returned when a file opens a front matter
// block but never closes it.
var ErrUnterminatedFrontMatter = errors.New("front matter started but no closing delimiter found")

// Document is a markdown file split into front matter and body.
type Document struct {
	Meta map[string]any
	Body string
}

// Page is the indexed metadata of one content file.
type Page struct {
	Path        string // site path, e.g. "/blog/hello"
	Slug        string
	Title       string
	Description string
	Image       string
	Type        string
	Draft       bool
}

// Parse reads a markdown stream and splits off its front matter, which
// must start on the first line with "---" and end with a line "---".
// A stream without front matter is all body.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc := &Document{Meta: make(map[string]any)}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		doc.Body = string(data)
		return doc, nil
	}

	rest := data[bytes.IndexByte(data, '\n')+1:]
	var fm []byte
	found := false
	for len(rest) > 0 {
		i := bytes.IndexByte(rest, '\n')
		line := rest
		next := []byte(nil)
		if i >= 0 {
			line, next = rest[:i], rest[i+1:]
		}
		if string(bytes.TrimRight(line, "\r")) == "---" {
			found = true
			rest = next
			break
		}
		fm = append(fm, line...)
		fm = append(fm, '\n')
		rest = next
	}
	if !found {
		return nil, ErrUnterminatedFrontMatter
	}

	if err := yaml.Unmarshal(fm, &doc.Meta); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	if doc.Meta == nil {
		doc.Meta = make(map[string]any)
	}
	doc.Body = string(rest)
	return doc, nil
}

// SkipFunc is called for a file that could not be read or parsed.
type SkipFunc func(name string, err error)

// Scan parses every file under fsys matching pattern and returns their
// pages in path order. Files that fail are reported to skip and left out.
// With a nil skip the first failure aborts the scan.
func Scan(fsys fs.FS, pattern string, skip SkipFunc) ([]Page, error) {
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("content: glob %q: %w", pattern, err)
	}
	pages := make([]Page, 0, len(matches))
	for _, name := range matches {
		p, err := ReadPage(fsys, name)
		if err != nil {
			if skip == nil {
				return nil, err
			}
			skip(name, err)
			continue
		}
		pages = append(pages, p)
	}
	return pages, nil
}

// ReadPage parses the single file name in fsys.
func ReadPage(fsys fs.FS, name string) (Page, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Page{}, err
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return Page{}, fmt.Errorf("content: %s: %w", name, err)
	}
	return PageFor(name, doc), nil
}

// PageFor builds the Page for a document stored at file name. The title
// falls back to the first "# " heading of the body.
func PageFor(name string, doc *Document) Page {
	sitePath := SitePath(name)
	p := Page{
		Path:        sitePath,
		Slug:        path.Base(sitePath),
		Title:       str(doc.Meta["title"]),
		Description: str(doc.Meta["description"]),
		Image:       str(doc.Meta["image"]),
		Type:        str(doc.Meta["type"]),
	}
	if p.Slug == "/" {
		p.Slug = ""
	}
	if d, ok := doc.Meta["draft"].(bool); ok {
		p.Draft = d
	}
	if p.Title == "" {
		p.Title = firstHeading(doc.Body)
	}
	return p
}

// SitePath maps a content file name to its site path: "blog/hello.md"
// becomes "/blog/hello" and "blog/index.md" becomes "/blog".
func SitePath(name string) string {
	name = strings.TrimSuffix(name, path.Ext(name))
	if path.Base(name) == "index" {
		name = path.Dir(name)
	}
	return path.Clean("/" + name)
}

func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

func str(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
