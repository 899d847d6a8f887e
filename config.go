package pubcontent

import (
	"regexp"
	"runtime"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config controls how a content collection is located and checked.
// Paths are slash-separated and relative to the fs.FS handed to Load.
type Config struct {
	ContentDir  string   // Collection root (default "src/content/blog")
	PublicDir   string   // Static assets root for "/..." hero images (default "public")
	Extensions  []string // Document extensions (default .md, .mdx)
	Workers     int      // Parallel validators (default runtime.NumCPU())
	CheckAssets bool     // Probe local heroImage files
}

func (c *Config) setDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = "src/content/blog"
	}
	if c.PublicDir == "" {
		c.PublicDir = "public"
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".md", ".mdx"}
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
}

var (
	extPattern = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)
	relPattern = regexp.MustCompile(`^[^/]`)
)

// Validate reports configuration values Load cannot work with.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ContentDir,
			validation.Required,
			validation.Match(relPattern).Error("must be relative to the project root"),
		),
		validation.Field(&c.PublicDir,
			validation.Required,
			validation.Match(relPattern).Error("must be relative to the project root"),
		),
		validation.Field(&c.Extensions,
			validation.Required,
			validation.Each(validation.Match(extPattern).Error("must look like .md")),
		),
		validation.Field(&c.Workers, validation.Required, validation.Min(1)),
	)
}

// Option adjusts a Config built by NewConfig.
type Option func(*Config)

// NewConfig returns a Config with defaults applied and then opts.
func NewConfig(opts ...Option) Config {
	var c Config
	c.setDefaults()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithContentDir sets the collection root.
func WithContentDir(dir string) Option {
	return func(c *Config) {
		c.ContentDir = dir
	}
}

// WithPublicDir sets the directory that "/..." hero images resolve against.
func WithPublicDir(dir string) Option {
	return func(c *Config) {
		c.PublicDir = dir
	}
}

// WithExtensions replaces the set of document extensions.
func WithExtensions(exts ...string) Option {
	return func(c *Config) {
		c.Extensions = exts
	}
}

// WithWorkers bounds how many documents are validated at once.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithAssetCheck enables hero image probing.
func WithAssetCheck() Option {
	return func(c *Config) {
		c.CheckAssets = true
	}
}
