// Command summarize reads one number per line and prints a Prometheus summary
// of them in the text exposition format.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command and returns the process exit code. Deferred
// cleanups run before main exits.
func run(args []string) int {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	app := kingpin.New("summarize", "Summarize numbers read from a file or stdin into Prometheus summary samples.")
	cmd := &summarizeCommand{}
	cmd.register(app)
	debug := app.Flag("log.debug", "Enable debug logging.").Bool()

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *debug {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	in := os.Stdin
	if cmd.input != "" {
		f, err := os.Open(cmd.input)
		if err != nil {
			level.Error(logger).Log("msg", "failed to open input", "file", cmd.input, "err", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	if err := cmd.run(in, os.Stdout, logger); err != nil {
		level.Error(logger).Log("msg", "summarize failed", "err", err)
		return 1
	}
	return 0
}
