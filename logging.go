package pubcontent

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func formatFrame(frame failure.Frame) string {
	return frame.Pkg() + "." + frame.Func() + ":" + strconv.Itoa(frame.Line())
}

func errorStackMarshaller(err error) interface{} {
	if cs, ok := failure.CallStackOf(err); ok {
		frames := cs.Frames()
		res := make([]string, 0, len(frames))
		for _, frame := range frames {
			res = append(res, formatFrame(frame))
		}
		return res
	}
	return err
}

// SetUpLogger configures the global zerolog logger. Logs go to stderr so
// command output on stdout stays machine-readable. format is one of auto,
// human or json; auto picks human output when stderr is a terminal.
func SetUpLogger(logLevel string, logFormat string) error {
	return setUpLogger(os.Stderr, logLevel, logFormat)
}

func setUpLogger(out *os.File, logLevel string, logFormat string) error {
	var useConsoleWriter bool
	switch logFormat {
	case "auto":
		useConsoleWriter = isatty.IsTerminal(out.Fd())
	case "human":
		useConsoleWriter = true
	case "json":
		useConsoleWriter = false
	default:
		return fmt.Errorf("invalid log format: %s, expected: [auto, json, human]", logFormat)
	}
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return err
	}

	var writer io.Writer = out
	if useConsoleWriter {
		writer = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = out
			if !isatty.IsTerminal(out.Fd()) {
				w.NoColor = true
			}
		})
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	zerolog.ErrorStackMarshaler = errorStackMarshaller
	return nil
}
