package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/eringen/pubcontent/scaffold"
)

func newCmd(g *globals) *cli.Command {
	var contentDir, description, heroImage string
	cmd := cli.Command{
		Name:      "new",
		Usage:     "create a post with valid front matter",
		ArgsUsage: "<title>",
	}
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "content-dir",
			Usage:       "collection directory, relative to --root",
			EnvVars:     []string{envName("CONTENT_DIR")},
			Value:       "src/content/blog",
			Destination: &contentDir,
		},
		&cli.StringFlag{
			Name:        "description",
			Usage:       "post description",
			Destination: &description,
		},
		&cli.StringFlag{
			Name:        "hero-image",
			Usage:       "hero image path or URL",
			Destination: &heroImage,
		},
		&cli.StringSliceFlag{
			Name:  "tags",
			Usage: "post tags",
		},
	}
	cmd.Action = func(c *cli.Context) error {
		title := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
		if title == "" {
			return errors.New("usage: pubcontent new <title>")
		}
		data := scaffold.NewPostData(title, description, time.Now(), c.StringSlice("tags"))
		data.HeroImage = heroImage
		dir := filepath.Join(g.root, filepath.FromSlash(contentDir))
		path, err := scaffold.NewPost(dir, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "created %s\n", path)
		return nil
	}
	return &cmd
}
