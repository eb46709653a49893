package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	flag "github.com/spf13/pflag"

	pastemd "github.com/pastemd/pastemd"
	"github.com/pastemd/pastemd/internal/config"
	"github.com/pastemd/pastemd/internal/fileutil"
	"github.com/pastemd/pastemd/internal/hints"
)

// Sentinel errors for the convert command.
var (
	errUsage        = errors.New("invalid usage")
	errReadMarkdown = errors.New("failed to read markdown")
	errWriteOutput  = errors.New("failed to write output")
)

// stdoutSink streams the payload to standard output, for piping.
type stdoutSink struct {
	w io.Writer
}

func (s *stdoutSink) Write(result *pastemd.Result) error {
	if _, err := s.w.Write(result.Payload); err != nil {
		return fmt.Errorf("%w: %v", errWriteOutput, err)
	}
	return nil
}

// runConvertCmd handles the convert subcommand.
func runConvertCmd(args []string, env *Environment) int {
	flags, inputs, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	cfg, err := loadConvertConfig(flags.config)
	if err != nil {
		reportError(env, err, cfg)
		return exitCodeFor(err)
	}

	format, err := resolveFormat(flags.to, cfg)
	if err != nil {
		reportError(env, err, cfg)
		return exitCodeFor(err)
	}

	if err := validateConvertArgs(flags, inputs); err != nil {
		reportError(env, err, cfg)
		return exitCodeFor(err)
	}

	opts := serviceOptions(flags, cfg)
	referenceDocx := flags.referenceDocx
	if referenceDocx == "" {
		referenceDocx = cfg.Word.ReferenceDocx
	}

	if len(inputs) <= 1 {
		return convertSingle(env, flags, cfg, opts, inputs, format, referenceDocx)
	}
	return convertBatch(env, flags, cfg, opts, inputs, format, referenceDocx)
}

// loadConvertConfig loads an explicit config file or searches the
// standard locations, falling back to defaults.
func loadConvertConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}
	return config.FindConfig()
}

// resolveFormat picks the target format: flag first, then config.
func resolveFormat(to string, cfg *config.Config) (pastemd.Format, error) {
	if to == "" {
		to = cfg.Output.DefaultFormat
	}
	if to == "" {
		return pastemd.FormatWord, nil
	}
	return pastemd.ParseFormat(to)
}

// validateConvertArgs rejects flag combinations that only make sense
// for a single input.
func validateConvertArgs(flags *convertFlags, inputs []string) error {
	if len(inputs) > 1 {
		if flags.out != "" {
			return fmt.Errorf("%w: --out needs a single input file, got %d", errUsage, len(inputs))
		}
		if flags.clipboard {
			return fmt.Errorf("%w: --clipboard needs a single input file, got %d", errUsage, len(inputs))
		}
	}
	if flags.out != "" && flags.clipboard {
		return fmt.Errorf("%w: --out and --clipboard are mutually exclusive", errUsage)
	}
	return nil
}

// serviceOptions translates flags and config into service options.
// An explicit --rules wins over the config's rule file.
func serviceOptions(flags *convertFlags, cfg *config.Config) []pastemd.Option {
	var opts []pastemd.Option
	if cfg.Engine.Path != "" {
		opts = append(opts, pastemd.WithEnginePath(cfg.Engine.Path))
	}
	ruleFile := flags.rules
	if ruleFile == "" {
		ruleFile = cfg.Rules.File
	}
	if ruleFile != "" {
		opts = append(opts, pastemd.WithRuleFile(ruleFile))
	}
	if flags.timeout > 0 {
		opts = append(opts, pastemd.WithTimeout(flags.timeout))
	}
	return opts
}

// convertSingle handles one input (a file path or stdin).
func convertSingle(env *Environment, flags *convertFlags, cfg *config.Config, opts []pastemd.Option, inputs []string, format pastemd.Format, referenceDocx string) int {
	svc, err := pastemd.New(opts...)
	if err != nil {
		reportError(env, err, cfg)
		return exitCodeFor(err)
	}

	path := ""
	if len(inputs) == 1 {
		path = inputs[0]
	}

	markdown, err := readMarkdown(path, env.Stdin)
	if err != nil {
		reportError(env, err, cfg)
		return exitCodeFor(err)
	}

	sink, err := selectSink(flags, env, path, format)
	if err != nil {
		reportError(env, err, cfg)
		return exitCodeFor(err)
	}

	input := pastemd.Input{Markdown: markdown, Format: format, ReferenceDocx: referenceDocx}
	result, err := svc.Deliver(context.Background(), input, sink)
	if err != nil {
		if flags.clipboard {
			reportClipboardError(env, err, cfg)
		} else {
			reportError(env, err, cfg)
		}
		return exitCodeFor(err)
	}

	if flags.clipboard && cfg.Output.KeepFile {
		if err := keepArtifact(env, cfg, result); err != nil {
			reportError(env, err, cfg)
			return exitCodeFor(err)
		}
	}

	if !flags.quiet {
		reportDelivery(env, flags, path, format)
	}
	return ExitSuccess
}

// convertBatch fans the input files across a bounded service pool.
// Each input gets an output path derived from its own name.
func convertBatch(env *Environment, flags *convertFlags, cfg *config.Config, opts []pastemd.Option, inputs []string, format pastemd.Format, referenceDocx string) int {
	pool, err := pastemd.NewServicePool(pastemd.ResolvePoolSize(flags.workers), opts...)
	if err != nil {
		reportError(env, err, cfg)
		return exitCodeFor(err)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = make([]error, len(inputs))
	)
	for i, path := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			markdown, err := readMarkdown(path, nil)
			if err != nil {
				errs[i] = err
				return
			}

			outPath := derivedOutputPath(path, format)
			input := pastemd.Input{Markdown: markdown, Format: format, ReferenceDocx: referenceDocx}
			if _, err := svc.Deliver(context.Background(), input, &pastemd.FileSink{Path: outPath}); err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
				return
			}

			if !flags.quiet {
				mu.Lock()
				fmt.Fprintf(env.Stdout, "converted %s -> %s\n", path, outPath)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	exit := ExitSuccess
	for _, err := range errs {
		if err == nil {
			continue
		}
		reportError(env, err, cfg)
		if exit == ExitSuccess {
			exit = exitCodeFor(err)
		}
	}
	return exit
}

// readMarkdown loads an input file, or drains stdin when path is empty.
func readMarkdown(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", errReadMarkdown, err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errReadMarkdown, err)
	}
	return string(data), nil
}

// selectSink picks the delivery sink for a single conversion:
// --clipboard, --out PATH, a derived sibling path for file input, or
// stdout for stdin input.
func selectSink(flags *convertFlags, env *Environment, inputPath string, format pastemd.Format) (pastemd.Sink, error) {
	switch {
	case flags.clipboard:
		if !pastemd.ClipboardAvailable() {
			return nil, fmt.Errorf("%w: no clipboard available on this system", pastemd.ErrSinkWrite)
		}
		return &pastemd.ClipboardSink{}, nil
	case flags.out != "":
		return &pastemd.FileSink{Path: flags.out}, nil
	case inputPath != "":
		return &pastemd.FileSink{Path: derivedOutputPath(inputPath, format)}, nil
	default:
		return &stdoutSink{w: env.Stdout}, nil
	}
}

// derivedOutputPath swaps the markdown extension for the target's.
func derivedOutputPath(inputPath string, format pastemd.Format) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + outputExtension(format)
}

// outputExtension returns the file extension for a target format.
func outputExtension(format pastemd.Format) string {
	if format == pastemd.FormatWord {
		return ".docx"
	}
	return ".html"
}

// keepArtifact persists a copy of a clipboard delivery to the
// configured save directory.
func keepArtifact(env *Environment, cfg *config.Config, result *pastemd.Result) error {
	dir := cfg.Output.SaveDir
	if dir == "" {
		dir = "."
	}
	name := "pastemd-" + env.Now().Format("20060102-150405") + outputExtension(result.Format)
	path := filepath.Join(dir, name)
	if err := fileutil.WriteFileAtomic(path, result.Payload, 0o644); err != nil {
		return fmt.Errorf("%w: keeping %s: %v", errWriteOutput, path, err)
	}
	return nil
}

// reportDelivery prints a one-line success message.
func reportDelivery(env *Environment, flags *convertFlags, inputPath string, format pastemd.Format) {
	switch {
	case flags.clipboard:
		fmt.Fprintf(env.Stdout, "copied %s output to clipboard\n", format)
	case flags.out != "":
		fmt.Fprintf(env.Stdout, "wrote %s\n", flags.out)
	case inputPath != "":
		fmt.Fprintf(env.Stdout, "wrote %s\n", derivedOutputPath(inputPath, format))
	}
}

// reportError prints an error with an actionable hint when one applies.
func reportError(env *Environment, err error, cfg *config.Config) {
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, cfg))
}

// reportClipboardError adds the platform clipboard hint on sink failures.
func reportClipboardError(env *Environment, err error, cfg *config.Config) {
	if errors.Is(err, pastemd.ErrSinkWrite) {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hints.ForClipboard())
		return
	}
	reportError(env, err, cfg)
}

// hintFor maps well-known failures to their hint.
func hintFor(err error, cfg *config.Config) string {
	enginePath := ""
	if cfg != nil {
		enginePath = cfg.Engine.Path
	}
	switch {
	case errors.Is(err, pastemd.ErrEngineMissing):
		return hints.ForEngineMissing(enginePath)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, pastemd.ErrUnsupportedContent):
		return hints.ForNoTable()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths())
	default:
		return ""
	}
}
