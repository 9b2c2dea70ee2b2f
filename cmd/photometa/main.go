package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/ryoh827/photometa/internal/config"
	"github.com/ryoh827/photometa/internal/logger"
	"github.com/ryoh827/photometa/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cfg := config.Load()

	flags := flag.NewFlagSet("photometa", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: photometa [-on-error stop|continue] [-log-level L] [-filename=true|false] FILE...")
		flags.PrintDefaults()
	}
	flags.StringVar(&cfg.OnError, "on-error", cfg.OnError, "what to do after a file fails: stop or continue")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flags.BoolFunc("filename", "write the image filename into the sidecar (default "+cfg.IncludeFilename+")", func(v string) error {
		cfg.IncludeFilename = v
		return nil
	})

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 2
	}

	log := logger.New(stderr, cfg.Level(), cfg.LogFormat).With("run_id", uuid.NewString())

	processor := pipeline.New(pipeline.Options{
		IncludeFilename: cfg.Filename(),
		Policy:          cfg.Policy(),
	}, log)

	failures := processor.ProcessAll(flags.Args())
	for _, err := range failures {
		path := "<unknown>"
		var perr *pipeline.Error
		if errors.As(err, &perr) {
			path = perr.Path
		}
		fmt.Fprintf(stderr, "While processing %s, we hit an error:\n  %v\n", path, err)
	}

	if len(failures) > 0 {
		return 1
	}
	return 0
}
