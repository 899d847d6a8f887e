package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/eringen/pubcontent"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "auto"
)

func envName(name string) string {
	return "PUBCONTENT_" + name
}

// globals holds flags shared by every command.
type globals struct {
	root      string
	logLevel  string
	logFormat string
}

func newApp() *cli.App {
	g := &globals{}
	app := cli.NewApp()
	app.Name = "pubcontent"
	app.Usage = "validate and list the blog's content collection"
	app.Version = version
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "root",
			Usage:       "project root that content and public directories are relative to",
			EnvVars:     []string{envName("ROOT")},
			Value:       ".",
			Destination: &g.root,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level ([trace, debug, info, warn, error])",
			EnvVars:     []string{"LOG_LEVEL"},
			Value:       defaultLogLevel,
			Destination: &g.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format ([auto, human, json])",
			EnvVars:     []string{"LOG_FORMAT"},
			Value:       defaultLogFormat,
			Destination: &g.logFormat,
		},
	}
	app.Before = func(c *cli.Context) error {
		return pubcontent.SetUpLogger(g.logLevel, g.logFormat)
	}
	app.Commands = []*cli.Command{
		checkCmd(g),
		listCmd(g),
		tagsCmd(g),
		newCmd(g),
	}
	return app
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "pubcontent: load .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newApp().RunContext(ctx, os.Args)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Stack().Err(err).Msg("pubcontent failed")
		os.Exit(1)
	}
}
