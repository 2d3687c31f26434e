package sitedef

import (
	"net/url"
	"path"
	"slices"
	"strings"
)

// Slugify lowercases s and joins its ASCII letter and digit runs with "-".
// "Hello World.md" becomes "hello-world-md".
func Slugify(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
	return strings.Join(words, "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
// When every segment is blank the base is returned unchanged.
func BuildURL(base string, segs ...string) string {
	if !slices.ContainsFunc(segs, func(s string) bool { return strings.TrimSpace(s) != "" }) {
		return base
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(segs...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// cleanPagePath normalises a content path to "/a/b" form, slugifying each
// segment. The root is "/".
func cleanPagePath(p string) string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if slug := Slugify(s); slug != "" {
			segs = append(segs, slug)
		}
	}
	return "/" + strings.Join(segs, "/")
}
