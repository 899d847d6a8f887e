package pubcontent

import (
	"path"
	"strings"
)

// Slugify lowercases s and joins its ASCII letter and digit runs with "-".
// Everything else, including non-ASCII letters, acts as a separator, so a
// title written entirely in another script yields "".
func Slugify(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(words, "-")
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// slugFor derives a post slug from its path inside the content directory.
// "2024/Hello World.md" becomes "2024/hello-world" and "trip/index.mdx"
// becomes "trip".
func slugFor(contentDir, name string) string {
	rel := strings.TrimPrefix(name, path.Clean(contentDir)+"/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if dir, base := path.Split(rel); base == "index" && dir != "" {
		rel = strings.TrimSuffix(dir, "/")
	}
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		// A segment with nothing to slugify keeps its name so siblings stay distinct.
		if slug := Slugify(part); slug != "" {
			parts[i] = slug
		}
	}
	return strings.Join(parts, "/")
}
