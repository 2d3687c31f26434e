package sitedef

// SiteDefaults are the values SiteMeta falls back to when a page leaves a
// field empty.
type SiteDefaults struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Image       string `yaml:"image"`
	OGType      string `yaml:"ogType"`
}

// SiteMeta produces the dynamic OpenGraph and Twitter card entries for one
// page. Every entry carries a HID equal to its key so later declarations can
// replace it. A zero page yields the site defaults.
func SiteMeta(d SiteDefaults, page PageMeta) []MetaEntry {
	title := or(page.Title, d.Title)
	description := or(page.Description, d.Description)
	ogType := or(page.OGType, d.OGType, "website")
	image := or(page.Image, d.Image)
	pageURL := d.URL
	if page.Path != "" {
		pageURL = BuildURL(d.URL, page.Path)
	}

	return []MetaEntry{
		Name("description", description).WithHID("description"),
		Property("og:type", ogType).WithHID("og:type"),
		Property("og:url", pageURL).WithHID("og:url"),
		Property("og:title", title).WithHID("og:title"),
		Property("og:description", description).WithHID("og:description"),
		Property("og:image", image).WithHID("og:image"),
		Name("twitter:url", pageURL).WithHID("twitter:url"),
		Name("twitter:title", title).WithHID("twitter:title"),
		Name("twitter:description", description).WithHID("twitter:description"),
		Name("twitter:image", image).WithHID("twitter:image"),
	}
}

func or(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
