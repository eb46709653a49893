package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	config        string
	rules         string
	to            string
	out           string
	clipboard     bool
	referenceDocx string
	timeout       time.Duration
	workers       int
	quiet         bool
}

// parseConvertFlags parses convert-command arguments, returning the
// flags and the positional input paths.
func parseConvertFlags(args []string, errOut io.Writer) (*convertFlags, []string, error) {
	flags := &convertFlags{}

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&flags.config, "config", "", "config file path (default: search standard locations)")
	fs.StringVar(&flags.rules, "rules", "", "correction rule file (default: embedded rules)")
	fs.StringVarP(&flags.to, "to", "t", "", "target format: word, excel, html (default: from config)")
	fs.StringVarP(&flags.out, "out", "o", "", "output file path (default: derived from input)")
	fs.BoolVar(&flags.clipboard, "clipboard", false, "deliver to the system clipboard instead of a file")
	fs.StringVar(&flags.referenceDocx, "reference-docx", "", "style template for Word output")
	fs.DurationVar(&flags.timeout, "timeout", 0, "per-job conversion timeout (default 30s)")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "parallel conversions for batch input (default: CPU-based)")
	fs.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress progress output")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return flags, fs.Args(), nil
}
