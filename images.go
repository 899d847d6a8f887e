package pubcontent

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"net/url"
	"path"
	"strings"

	_ "golang.org/x/image/webp"
)

// ImageInfo describes a hero image found on disk.
type ImageInfo struct {
	Path   string
	Format string
	Width  int
	Height int
}

// CheckHeroImage confirms that the heroImage ref of the document at docPath
// points at a decodable image inside fsys. References starting with "./" or
// "../" resolve against the document's directory; any other local reference
// resolves against publicDir. Remote URLs are not fetched and report
// ok == false.
func CheckHeroImage(fsys fs.FS, publicDir, docPath, ref string) (info ImageInfo, ok bool, err error) {
	name, local, err := resolveAsset(publicDir, docPath, ref)
	if err != nil || !local {
		return ImageInfo{}, false, err
	}
	f, err := fsys.Open(name)
	if err != nil {
		return ImageInfo{}, false, fmt.Errorf("heroImage %q: %w", ref, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{}, false, fmt.Errorf("heroImage %q: decode %s: %w", ref, name, err)
	}
	return ImageInfo{
		Path:   name,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, true, nil
}

func resolveAsset(publicDir, docPath, ref string) (string, bool, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false, fmt.Errorf("heroImage is empty")
	}
	if strings.HasPrefix(ref, "//") {
		return "", false, nil
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return "", false, nil
	}
	// Drop query strings and fragments such as "?v=2".
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}

	var name string
	switch {
	case strings.HasPrefix(ref, "./"), strings.HasPrefix(ref, "../"):
		name = path.Join(path.Dir(docPath), ref)
	default:
		name = path.Join(publicDir, strings.TrimPrefix(ref, "/"))
	}
	if !fs.ValidPath(name) {
		return "", false, fmt.Errorf("heroImage %q resolves outside the project", ref)
	}
	return name, true, nil
}
