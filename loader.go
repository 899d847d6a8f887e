package pubcontent

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/morikuni/failure"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/pubcontent/frontmatter"
)

// Failure records why one document was left out of the collection.
type Failure struct {
	Path string
	Code failure.StringCode
	Err  error
}

func (f Failure) Error() string {
	return f.Path + ": " + f.Err.Error()
}

// Invalid returns the field-level report when the document failed schema
// validation.
func (f Failure) Invalid() (*ValidationError, bool) {
	ve, ok := f.Err.(*ValidationError)
	return ve, ok
}

// Result is the outcome of loading a collection. Documents that failed are
// listed in Failures, sorted by path, and are absent from Collection.
type Result struct {
	Collection *Collection
	Failures   []Failure
	Scanned    int
}

// OK reports whether every scanned document was accepted.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

type outcome struct {
	post Post
	fail *Failure
}

// Load walks cfg.ContentDir inside fsys, validates every document in
// parallel and returns the accepted posts as a Collection. A rejected
// document never aborts the load; only an unreadable content directory, an
// invalid config or a cancelled ctx do.
func Load(ctx context.Context, fsys fs.FS, cfg Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, failure.Wrap(err, failure.Message("invalid config"))
	}

	paths, err := findDocuments(fsys, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("dir", cfg.ContentDir).Int("documents", len(paths)).Msg("content scanned")

	outcomes := make([]outcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, name := range paths {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			post, fail := loadDocument(fsys, cfg, name)
			outcomes[i] = outcome{post: post, fail: fail}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Scanned: len(paths)}
	var posts []Post
	owners := make(map[string]string, len(paths))
	for _, o := range outcomes {
		if o.fail != nil {
			res.Failures = append(res.Failures, *o.fail)
			continue
		}
		if owner, taken := owners[o.post.Slug]; taken {
			res.Failures = append(res.Failures, Failure{
				Path: o.post.Path,
				Code: DuplicateSlug,
				Err:  failure.New(DuplicateSlug, failure.Message(fmt.Sprintf("slug %q is already used by %s", o.post.Slug, owner))),
			})
			continue
		}
		owners[o.post.Slug] = o.post.Path
		posts = append(posts, o.post)
	}
	res.Collection = NewCollection(posts)

	for _, f := range res.Failures {
		log.Warn().Str("path", f.Path).Str("code", string(f.Code)).Err(f.Err).Msg("document rejected")
	}
	log.Info().
		Int("scanned", res.Scanned).
		Int("accepted", res.Collection.Len()).
		Int("rejected", len(res.Failures)).
		Msg("collection loaded")
	return res, nil
}

func loadDocument(fsys fs.FS, cfg Config, name string) (Post, *Failure) {
	reject := func(code failure.StringCode, err error) (Post, *Failure) {
		return Post{}, &Failure{Path: name, Code: code, Err: err}
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return reject(ReadFailed, err)
	}
	doc, err := frontmatter.Parse(data)
	if err != nil {
		return reject(ParseFailed, err)
	}
	entry, err := Validate(doc.Fields)
	if err != nil {
		return reject(InvalidEntry, err)
	}
	if cfg.CheckAssets {
		if ref, ok := entry.HeroImage().Get(); ok {
			if _, _, err := CheckHeroImage(fsys, cfg.PublicDir, name, ref); err != nil {
				return reject(HeroImageUnreadable, err)
			}
		}
	}
	return Post{
		Slug:  slugFor(cfg.ContentDir, name),
		Path:  name,
		Entry: entry,
		Body:  doc.Body,
	}, nil
}

// findDocuments lists content files in lexical order. Names starting with
// "_" or "." are skipped, as are directories with such names.
func findDocuments(fsys fs.FS, cfg Config) ([]string, error) {
	root := path.Clean(cfg.ContentDir)
	info, err := fs.Stat(fsys, root)
	if err != nil {
		return nil, failure.MarkUnexpected(err)
	}
	if !info.IsDir() {
		return nil, failure.MarkUnexpected(fmt.Errorf("content dir %s is not a directory", root))
	}
	var paths []string
	err = fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && hasExtension(d.Name(), cfg.Extensions) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, failure.MarkUnexpected(err)
	}
	sort.Strings(paths)
	return paths, nil
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
