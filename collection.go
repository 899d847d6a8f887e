package pubcontent

import (
	"slices"
	"sort"
	"strings"

	"github.com/morikuni/failure"
)

// Collection is the read-only set of validated posts handed to the site
// generator. Posts are ordered by publish date, newest first.
type Collection struct {
	posts []Post
	tags  []string
	index map[string]int
}

// NewCollection sorts posts by publish date descending (slug breaks ties)
// and indexes them by slug and tag.
func NewCollection(posts []Post) *Collection {
	sorted := slices.Clone(posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Entry.PubDate(), sorted[j].Entry.PubDate()
		if !a.Equal(b) {
			return a.After(b)
		}
		return sorted[i].Slug < sorted[j].Slug
	})

	c := &Collection{
		posts: sorted,
		index: make(map[string]int, len(sorted)),
	}
	set := make(map[string]struct{})
	for i, p := range sorted {
		c.index[p.Slug] = i
		for _, t := range p.Entry.TagList() {
			if tag := normalizeTag(t); tag != "" {
				set[tag] = struct{}{}
			}
		}
	}
	for t := range set {
		c.tags = append(c.tags, t)
	}
	sort.Strings(c.tags)
	return c
}

// Len returns the number of posts.
func (c *Collection) Len() int {
	return len(c.posts)
}

// Posts returns all posts, optionally filtered by tag. Tag matching is
// case-insensitive and ignores surrounding whitespace.
func (c *Collection) Posts(tag string) []Post {
	if tag == "" {
		return slices.Clone(c.posts)
	}
	normalized := normalizeTag(tag)
	var filtered []Post
	for _, p := range c.posts {
		for _, t := range p.Entry.TagList() {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// Tags returns the distinct lowercased tags across all posts, sorted.
func (c *Collection) Tags() []string {
	return slices.Clone(c.tags)
}

// Get returns the post with the given slug.
func (c *Collection) Get(slug string) (Post, error) {
	i, ok := c.index[slug]
	if !ok {
		return Post{}, failure.New(NotFound, failure.Context{"slug": slug})
	}
	return c.posts[i], nil
}

// Related finds posts that share at least one tag with current.
func (c *Collection) Related(current Post) []Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Entry.TagList() {
		if tag := normalizeTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []Post
	for _, p := range c.posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Entry.TagList() {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
