package pandoc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pastemd/pastemd/internal/fileutil"
)

// Sentinel errors for engine operations.
var (
	ErrEngineMissing = errors.New("pandoc not found")
	ErrParse         = errors.New("markdown parse failed")
	ErrRender        = errors.New("document rendering failed")
)

// Target identifies a pandoc output writer.
type Target string

const (
	// TargetDocx produces a Word-compatible document (binary).
	TargetDocx Target = "docx"
	// TargetHTML produces an HTML fragment (no standalone wrapper).
	TargetHTML Target = "html"
)

// readerFormat disables fancy_lists so letter markers (A), B), etc.)
// survive as plain text instead of becoming numbered lists.
const readerFormat = "markdown-fancy_lists"

// Options carries per-conversion engine settings.
type Options struct {
	// ReferenceDocx is passed to pandoc's --reference-doc for docx
	// output, supplying document styles. Ignored for other targets.
	ReferenceDocx string
}

// Engine invokes pandoc through a CommandRunner.
// The zero value is not usable; create with NewEngine.
type Engine struct {
	path   string
	runner CommandRunner
}

// NewEngine creates an Engine for the pandoc binary at path.
// An empty path means "pandoc" resolved via PATH.
func NewEngine(path string) *Engine {
	if path == "" {
		path = "pandoc"
	}
	return &Engine{path: path, runner: &ExecRunner{}}
}

// NewEngineWithRunner creates an Engine with a custom runner, for tests.
func NewEngineWithRunner(path string, runner CommandRunner) *Engine {
	e := NewEngine(path)
	e.runner = runner
	return e
}

// Path returns the configured pandoc binary path.
func (e *Engine) Path() string {
	return e.path
}

// Probe checks that the pandoc binary is reachable and returns its
// version line. A missing binary is reported as ErrEngineMissing.
func (e *Engine) Probe(ctx context.Context) (string, error) {
	stdout, stderr, err := e.runner.Run(ctx, nil, e.path, "--version")
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: %q", ErrEngineMissing, e.path)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("probing pandoc: %s: %w", strings.TrimSpace(stderr), err)
	}

	line, _, _ := strings.Cut(string(stdout), "\n")
	return strings.TrimSpace(line), nil
}

// Convert runs the two-pass conversion: markdown is parsed to pandoc's
// JSON AST, every math node payload is rewritten through the hook, and
// the corrected AST is serialized by the target writer. The hook may be
// nil, in which case the AST passes through untouched.
func (e *Engine) Convert(ctx context.Context, markdown string, target Target, rewrite MathRewriter, opts *Options) ([]byte, error) {
	doc, err := e.parse(ctx, markdown)
	if err != nil {
		return nil, err
	}

	if rewrite != nil {
		doc, err = RewriteMath(doc, rewrite)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
	}

	return e.render(ctx, doc, target, opts)
}

// parse converts markdown to pandoc's JSON AST.
func (e *Engine) parse(ctx context.Context, markdown string) ([]byte, error) {
	stdout, stderr, err := e.runner.Run(ctx, []byte(markdown), e.path,
		"-f", readerFormat, "-t", "json")
	if err != nil {
		return nil, e.classify(ctx, err, stderr, ErrParse)
	}
	return stdout, nil
}

// render serializes a JSON AST with the target writer. Binary targets go
// through a temp file since pandoc refuses binary output on a terminal.
func (e *Engine) render(ctx context.Context, doc []byte, target Target, opts *Options) ([]byte, error) {
	args := []string{"-f", "json", "-t", string(target)}

	switch target {
	case TargetDocx:
		if opts != nil && opts.ReferenceDocx != "" {
			args = append(args, "--reference-doc", opts.ReferenceDocx)
		}

		tmpPath, cleanup, err := fileutil.WriteTempFile("", "docx")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		defer cleanup()

		args = append(args, "-o", tmpPath)
		if _, stderr, err := e.runner.Run(ctx, doc, e.path, args...); err != nil {
			return nil, e.classify(ctx, err, stderr, ErrRender)
		}

		out, err := os.ReadFile(tmpPath)
		if err != nil {
			return nil, fmt.Errorf("%w: reading output: %v", ErrRender, err)
		}
		return out, nil

	default:
		stdout, stderr, err := e.runner.Run(ctx, doc, e.path, args...)
		if err != nil {
			return nil, e.classify(ctx, err, stderr, ErrRender)
		}
		return stdout, nil
	}
}

// classify maps a runner failure to the engine error taxonomy.
// Cancellation and deadline expiry surface as the context error, never as
// a parse or render failure.
func (e *Engine) classify(ctx context.Context, err error, stderr string, kind error) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %q", ErrEngineMissing, e.path)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	detail := strings.TrimSpace(stderr)
	if detail == "" {
		return fmt.Errorf("%w: %v", kind, err)
	}
	return fmt.Errorf("%w: %s", kind, detail)
}

// isNotFound reports whether err means the binary does not exist.
func isNotFound(err error) bool {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return errors.Is(execErr.Err, exec.ErrNotFound) || errors.Is(execErr.Err, os.ErrNotExist)
	}
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
