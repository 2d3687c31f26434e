package content

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontMatter(t *testing.T) {
	src := "---\ntitle: Hello\ndescription: First post\ndraft: true\n---\n# Heading\n\nBody text.\n"

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "Hello", doc.Meta["title"])
	assert.Equal(t, "First post", doc.Meta["description"])
	assert.Equal(t, true, doc.Meta["draft"])
	assert.Equal(t, "# Heading\n\nBody text.\n", doc.Body)
}

func TestParseCRLF(t *testing.T) {
	src := "---\r\ntitle: Windows\r\n---\r\nbody"

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "Windows", doc.Meta["title"])
	assert.Equal(t, "body", doc.Body)
}

func TestParseWithoutFrontMatter(t *testing.T) {
	doc, err := Parse(strings.NewReader("just text\n---\nmore"))
	require.NoError(t, err)
	assert.Empty(t, doc.Meta)
	assert.Equal(t, "just text\n---\nmore", doc.Body)
}

func TestParseDashesInsideValues(t *testing.T) {
	src := "---\ntitle: a---b\n---\nbody"

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "a---b", doc.Meta["title"])
	assert.Equal(t, "body", doc.Body)
}

func TestParseUnterminated(t *testing.T) {
	_, err := Parse(strings.NewReader("---\ntitle: x\n"))
	assert.ErrorIs(t, err, ErrUnterminatedFrontMatter)
}

func TestParseBadYAML(t *testing.T) {
	_, err := Parse(strings.NewReader("---\ntitle: [unclosed\n---\n"))
	assert.Error(t, err)
}

func TestSitePath(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"index.md", "/"},
		{"about.md", "/about"},
		{"blog/hello.md", "/blog/hello"},
		{"blog/index.md", "/blog"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SitePath(tt.name), tt.name)
	}
}

func TestPageForTitleFallsBackToHeading(t *testing.T) {
	doc := &Document{Meta: map[string]any{}, Body: "intro\n# From Heading\n"}

	p := PageFor("blog/x.md", doc)
	assert.Equal(t, "From Heading", p.Title)
	assert.Equal(t, "x", p.Slug)
	assert.Equal(t, "/blog/x", p.Path)
}

func TestScan(t *testing.T) {
	fsys := fstest.MapFS{
		"index.md":         {Data: []byte("---\ntitle: Home\n---\n")},
		"blog/hello.md":    {Data: []byte("---\ntitle: Hello\ndescription: Hi\nimage: /img/hello.jpg\ntype: article\n---\nbody")},
		"blog/draft.md":    {Data: []byte("---\ntitle: Draft\ndraft: true\n---\n")},
		"blog/notes.txt":   {Data: []byte("ignored")},
		"blog/nested/a.md": {Data: []byte("# Nested A\n")},
	}

	pages, err := Scan(fsys, "**/*.md", nil)
	require.NoError(t, err)
	require.Len(t, pages, 4)

	byPath := make(map[string]Page)
	for _, p := range pages {
		byPath[p.Path] = p
	}
	assert.Equal(t, "Home", byPath["/"].Title)
	assert.Equal(t, Page{
		Path: "/blog/hello", Slug: "hello", Title: "Hello", Description: "Hi",
		Image: "/img/hello.jpg", Type: "article",
	}, byPath["/blog/hello"])
	assert.True(t, byPath["/blog/draft"].Draft)
	assert.Equal(t, "Nested A", byPath["/blog/nested/a"].Title)
}

func TestScanReportsBrokenFile(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.md": {Data: []byte("---\ntitle: x\n")},
	}
	_, err := Scan(fsys, "**/*.md", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.md")
	assert.ErrorIs(t, err, ErrUnterminatedFrontMatter)
}

func TestScanSkipsBrokenFile(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md":      {Data: []byte("---\ntitle: A\n---\n")},
		"broken.md": {Data: []byte("---\njust a rule\n")},
		"c.md":      {Data: []byte("# C\n")},
	}

	var skipped []string
	pages, err := Scan(fsys, "**/*.md", func(name string, err error) {
		assert.ErrorIs(t, err, ErrUnterminatedFrontMatter)
		skipped = append(skipped, name)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"broken.md"}, skipped)
	var titles []string
	for _, p := range pages {
		titles = append(titles, p.Title)
	}
	assert.ElementsMatch(t, []string{"A", "C"}, titles)
}

func TestReadPageMissing(t *testing.T) {
	_, err := ReadPage(fstest.MapFS{}, "gone.md")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
