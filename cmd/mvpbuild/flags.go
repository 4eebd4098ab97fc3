package main

import (
	"errors"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// specFlags select the page spec and where the result goes.
type specFlags struct {
	file   string
	output string
	format string
}

// builderFlags override builder config values.
type builderFlags struct {
	targetOrigin string
	stylesheet   string
}

type buildFlags struct {
	common  commonFlags
	spec    specFlags
	builder builderFlags
}

type serveFlags struct {
	common commonFlags
	addr   string
}

type previewFlags struct {
	common  commonFlags
	spec    specFlags
	builder builderFlags
	width   int
	height  int
	timeout time.Duration
}

type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show details")
}

// addSpecFlags adds page spec input and output flags to a FlagSet.
func addSpecFlags(fs *flag.FlagSet, f *specFlags, outputHelp string) {
	fs.StringVarP(&f.file, "file", "f", "", "page spec file (YAML or JSON)")
	fs.StringVarP(&f.output, "output", "o", "", outputHelp)
	fs.StringVar(&f.format, "format", "", "override body format: html, markdown")
}

// addBuilderFlags adds builder override flags to a FlagSet.
func addBuilderFlags(fs *flag.FlagSet, f *builderFlags) {
	fs.StringVar(&f.targetOrigin, "target-origin", "", "origin tracking messages are posted to")
	fs.StringVar(&f.stylesheet, "stylesheet", "", "utility stylesheet URL")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting
// and prints usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", w, printBuildUsage)
	addSpecFlags(fs, &f.spec, "output HTML file (default: stdout)")
	addBuilderFlags(fs, &f.builder)
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

func parseServeFlags(args []string, w io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", w, printServeUsage)
	fs.StringVar(&f.addr, "addr", "", "listen address (default from config, :8080)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

func parsePreviewFlags(args []string, w io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := newFlagSet("preview", w, printPreviewUsage)
	addSpecFlags(fs, &f.spec, "output PNG file")
	addBuilderFlags(fs, &f.builder)
	fs.IntVar(&f.width, "width", 0, "viewport width in pixels (default from config)")
	fs.IntVar(&f.height, "height", 0, "viewport height in pixels (default from config)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "page load timeout (e.g. 30s)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", w, printDoctorUsage)
	fs.BoolVar(&f.json, "json", false, "output JSON")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

// flagError passes -h through untouched and marks anything else as usage.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return usageError("%v", err)
}
