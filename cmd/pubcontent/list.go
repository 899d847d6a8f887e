package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/eringen/pubcontent"
)

func listCmd(g *globals) *cli.Command {
	var cfg pubcontent.Config
	var tag, format string
	cmd := cli.Command{
		Name:  "list",
		Usage: "print valid posts, newest first",
	}
	cmd.Flags = append(contentFlags(&cfg),
		&cli.StringFlag{
			Name:        "tag",
			Usage:       "only posts carrying this tag",
			Destination: &tag,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "output format ([json, text])",
			Value:       "json",
			Destination: &format,
		},
	)
	cmd.Action = func(c *cli.Context) error {
		res, err := loadCollection(c, g, cfg)
		if err != nil {
			return err
		}
		posts := res.Collection.Posts(tag)
		out := c.App.Writer
		switch format {
		case "json":
			if posts == nil {
				posts = []pubcontent.Post{}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(posts)
		case "text":
			for _, p := range posts {
				fmt.Fprintf(out, "%s  %s  %s", p.Entry.PubDate().Format("2006-01-02"), p.Slug, p.Entry.Title())
				if tags := p.Entry.TagList(); len(tags) > 0 {
					fmt.Fprintf(out, "  [%s]", pubcontent.JoinTags(tags))
				}
				fmt.Fprintln(out)
			}
			return nil
		}
		return fmt.Errorf("invalid output format: %s, expected: [json, text]", format)
	}
	return &cmd
}

func tagsCmd(g *globals) *cli.Command {
	var cfg pubcontent.Config
	cmd := cli.Command{
		Name:  "tags",
		Usage: "print the distinct tags of valid posts",
		Flags: contentFlags(&cfg),
	}
	cmd.Action = func(c *cli.Context) error {
		res, err := loadCollection(c, g, cfg)
		if err != nil {
			return err
		}
		for _, t := range res.Collection.Tags() {
			fmt.Fprintln(c.App.Writer, t)
		}
		return nil
	}
	return &cmd
}
