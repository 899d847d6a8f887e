// Package scaffold creates new blog posts from embedded templates. Every
// generated post is checked against the content schema before it is written.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/eringen/pubcontent"
	"github.com/eringen/pubcontent/frontmatter"
)

// Templates contains the post templates. Files use Go text/template syntax
// and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

var postTemplate = template.Must(template.ParseFS(Templates, "templates/post.md.tmpl"))

// PostData holds the template variables for a new post.
type PostData struct {
	Title       string
	Description string
	PubDate     string
	HeroImage   string
	Tags        []string
}

// NewPostData fills PubDate from now and trims the tag list.
func NewPostData(title, description string, now time.Time, tags []string) PostData {
	return PostData{
		Title:       strings.TrimSpace(title),
		Description: description,
		PubDate:     now.Format("2006-01-02"),
		Tags:        pubcontent.FilterEmpty(tags),
	}
}

// RenderPost writes the post document for data to w.
func RenderPost(w io.Writer, data PostData) error {
	return postTemplate.ExecuteTemplate(w, "post.md.tmpl", data)
}

// NewPost writes <dir>/<slug>.md and returns its path. It refuses to
// overwrite an existing file.
func NewPost(dir string, data PostData) (string, error) {
	slug := pubcontent.Slugify(data.Title)
	if slug == "" {
		return "", errors.New("scaffold: title must contain at least one letter or digit")
	}

	var buf bytes.Buffer
	if err := RenderPost(&buf, data); err != nil {
		return "", fmt.Errorf("scaffold: render: %w", err)
	}
	doc, err := frontmatter.Parse(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("scaffold: %w", err)
	}
	if _, err := pubcontent.Validate(doc.Fields); err != nil {
		return "", fmt.Errorf("scaffold: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, slug+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("scaffold: %s already exists", path)
		}
		return "", err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
