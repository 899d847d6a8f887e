package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/eringen/pubcontent"
)

func contentFlags(cfg *pubcontent.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "content-dir",
			Usage:       "collection directory, relative to --root",
			EnvVars:     []string{envName("CONTENT_DIR")},
			Value:       "src/content/blog",
			Destination: &cfg.ContentDir,
		},
		&cli.StringFlag{
			Name:        "public-dir",
			Usage:       "static assets directory that \"/...\" hero images resolve against",
			EnvVars:     []string{envName("PUBLIC_DIR")},
			Value:       "public",
			Destination: &cfg.PublicDir,
		},
		&cli.StringSliceFlag{
			Name:    "ext",
			Usage:   "document extensions to include",
			EnvVars: []string{envName("EXTENSIONS")},
			Value:   cli.NewStringSlice(".md", ".mdx"),
		},
		&cli.IntFlag{
			Name:        "workers",
			Usage:       "documents validated in parallel (0 = one per CPU)",
			EnvVars:     []string{envName("WORKERS")},
			Destination: &cfg.Workers,
		},
		&cli.BoolFlag{
			Name:        "check-assets",
			Usage:       "verify that local heroImage files exist and decode",
			EnvVars:     []string{envName("CHECK_ASSETS")},
			Destination: &cfg.CheckAssets,
		},
	}
}

func loadCollection(c *cli.Context, g *globals, cfg pubcontent.Config) (*pubcontent.Result, error) {
	cfg.Extensions = c.StringSlice("ext")
	return pubcontent.Load(c.Context, os.DirFS(g.root), cfg)
}

func checkCmd(g *globals) *cli.Command {
	var cfg pubcontent.Config
	var format string
	cmd := cli.Command{
		Name:  "check",
		Usage: "validate every document and report all problems",
	}
	cmd.Flags = append(contentFlags(&cfg), &cli.StringFlag{
		Name:        "format",
		Usage:       "report format ([text, json])",
		Value:       "text",
		Destination: &format,
	})
	cmd.Action = func(c *cli.Context) error {
		res, err := loadCollection(c, g, cfg)
		if err != nil {
			return err
		}
		out := c.App.Writer
		switch format {
		case "text":
			writeTextReport(out, res)
		case "json":
			if err := writeJSONReport(out, res); err != nil {
				return err
			}
		default:
			return fmt.Errorf("invalid report format: %s, expected: [text, json]", format)
		}
		if !res.OK() {
			return cli.Exit(fmt.Sprintf("%d of %d documents rejected", len(res.Failures), res.Scanned), 1)
		}
		if format == "text" {
			fmt.Fprintf(out, "%d documents ok\n", res.Scanned)
		}
		return nil
	}
	return &cmd
}

// writeTextReport prints one line per problem: "path: field: reason (message)"
// for schema failures and "path: code: error" for the rest.
func writeTextReport(w io.Writer, res *pubcontent.Result) {
	for _, f := range res.Failures {
		if ve, ok := f.Invalid(); ok {
			for _, field := range ve.Fields() {
				reason, _ := ve.Reason(field)
				fmt.Fprintf(w, "%s: %s: %s (%s)\n", f.Path, field, reason, ve.Errors[field])
			}
			continue
		}
		fmt.Fprintf(w, "%s: %s: %v\n", f.Path, f.Code, f.Err)
	}
}

type failureJSON struct {
	Path   string                       `json:"path"`
	Code   string                       `json:"code"`
	Fields map[string]pubcontent.Reason `json:"fields,omitempty"`
	Error  string                       `json:"error"`
}

type reportJSON struct {
	Scanned  int           `json:"scanned"`
	Accepted int           `json:"accepted"`
	Failures []failureJSON `json:"failures"`
}

func writeJSONReport(w io.Writer, res *pubcontent.Result) error {
	report := reportJSON{
		Scanned:  res.Scanned,
		Accepted: res.Collection.Len(),
		Failures: make([]failureJSON, 0, len(res.Failures)),
	}
	for _, f := range res.Failures {
		item := failureJSON{
			Path:  f.Path,
			Code:  string(f.Code),
			Error: f.Err.Error(),
		}
		if ve, ok := f.Invalid(); ok {
			item.Fields = ve.Reasons()
		}
		report.Failures = append(report.Failures, item)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
