package pandoc

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// fakeRunner scripts responses per invocation and records calls.
type fakeRunner struct {
	calls     [][]string
	responses []fakeResponse
}

type fakeResponse struct {
	stdout []byte
	stderr string
	err    error
	// writeTo, when set, writes stdout to the path given by the -o flag
	// instead of returning it, mimicking pandoc's binary output mode.
	writeTo bool
}

func (r *fakeRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, string, error) {
	call := append([]string{name}, args...)
	r.calls = append(r.calls, call)

	if len(r.responses) == 0 {
		return nil, "", errors.New("fakeRunner: no scripted response")
	}
	resp := r.responses[0]
	r.responses = r.responses[1:]

	if resp.writeTo {
		for i, a := range args {
			if a == "-o" && i+1 < len(args) {
				if err := os.WriteFile(args[i+1], resp.stdout, 0o600); err != nil {
					return nil, "", err
				}
				return nil, resp.stderr, resp.err
			}
		}
	}
	return resp.stdout, resp.stderr, resp.err
}

func notFoundErr() error {
	return &exec.Error{Name: "pandoc", Err: exec.ErrNotFound}
}

const minimalAST = `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"Para","c":[{"t":"Math","c":[{"t":"InlineMath"},"{\\kern 10pt}"]}]}]}`

func TestEngineProbe(t *testing.T) {
	t.Parallel()

	t.Run("reports version line", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{responses: []fakeResponse{
			{stdout: []byte("pandoc 3.1.9\nFeatures: +server\n")},
		}}
		e := NewEngineWithRunner("", runner)

		version, err := e.Probe(context.Background())
		if err != nil {
			t.Fatalf("Probe() error: %v", err)
		}
		if version != "pandoc 3.1.9" {
			t.Errorf("version = %q, want %q", version, "pandoc 3.1.9")
		}
		if got := runner.calls[0]; got[0] != "pandoc" || got[1] != "--version" {
			t.Errorf("unexpected invocation: %v", got)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{responses: []fakeResponse{{err: notFoundErr()}}}
		e := NewEngineWithRunner("pandoc", runner)

		_, err := e.Probe(context.Background())
		if !errors.Is(err, ErrEngineMissing) {
			t.Errorf("error = %v, want ErrEngineMissing", err)
		}
	})
}

func TestEngineConvert(t *testing.T) {
	t.Parallel()

	t.Run("html passes filtered AST to writer", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{responses: []fakeResponse{
			{stdout: []byte(minimalAST)},
			{stdout: []byte("<p>rendered</p>")},
		}}
		e := NewEngineWithRunner("", runner)

		rewritten := ""
		out, err := e.Convert(context.Background(), `$\kern 10pt$`, TargetHTML,
			func(expr string, display bool) string {
				rewritten = expr
				return `\qquad`
			}, nil)
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		if string(out) != "<p>rendered</p>" {
			t.Errorf("output = %q", out)
		}
		if rewritten != `{\kern 10pt}` {
			t.Errorf("rewriter saw %q", rewritten)
		}

		// First pass reads markdown to JSON, second feeds JSON to the writer.
		if len(runner.calls) != 2 {
			t.Fatalf("got %d invocations, want 2", len(runner.calls))
		}
		first := strings.Join(runner.calls[0], " ")
		if !strings.Contains(first, "-f markdown-fancy_lists") || !strings.Contains(first, "-t json") {
			t.Errorf("first invocation = %q", first)
		}
		second := strings.Join(runner.calls[1], " ")
		if !strings.Contains(second, "-f json") || !strings.Contains(second, "-t html") {
			t.Errorf("second invocation = %q", second)
		}
	})

	t.Run("docx renders through temp file", func(t *testing.T) {
		t.Parallel()

		docxBytes := []byte("PK\x03\x04 fake docx")
		runner := &fakeRunner{responses: []fakeResponse{
			{stdout: []byte(minimalAST)},
			{stdout: docxBytes, writeTo: true},
		}}
		e := NewEngineWithRunner("", runner)

		out, err := e.Convert(context.Background(), "hello", TargetDocx, nil, nil)
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		if string(out) != string(docxBytes) {
			t.Errorf("output = %q, want docx bytes", out)
		}
	})

	t.Run("reference doc forwarded for docx", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{responses: []fakeResponse{
			{stdout: []byte(minimalAST)},
			{stdout: []byte("x"), writeTo: true},
		}}
		e := NewEngineWithRunner("", runner)

		_, err := e.Convert(context.Background(), "hello", TargetDocx, nil,
			&Options{ReferenceDocx: "/tmp/ref.docx"})
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		second := strings.Join(runner.calls[1], " ")
		if !strings.Contains(second, "--reference-doc /tmp/ref.docx") {
			t.Errorf("second invocation = %q, want --reference-doc", second)
		}
	})

	t.Run("missing binary on parse", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{responses: []fakeResponse{{err: notFoundErr()}}}
		e := NewEngineWithRunner("", runner)

		_, err := e.Convert(context.Background(), "hello", TargetHTML, nil, nil)
		if !errors.Is(err, ErrEngineMissing) {
			t.Errorf("error = %v, want ErrEngineMissing", err)
		}
	})

	t.Run("parse failure carries stderr detail", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{responses: []fakeResponse{
			{stderr: "YAML parse exception", err: errors.New("exit status 64")},
		}}
		e := NewEngineWithRunner("", runner)

		_, err := e.Convert(context.Background(), "hello", TargetHTML, nil, nil)
		if !errors.Is(err, ErrParse) {
			t.Fatalf("error = %v, want ErrParse", err)
		}
		if !strings.Contains(err.Error(), "YAML parse exception") {
			t.Errorf("error %q must carry stderr detail", err)
		}
	})

	t.Run("render failure is distinct from parse failure", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{responses: []fakeResponse{
			{stdout: []byte(minimalAST)},
			{stderr: "cannot write", err: errors.New("exit status 1")},
		}}
		e := NewEngineWithRunner("", runner)

		_, err := e.Convert(context.Background(), "hello", TargetHTML, nil, nil)
		if !errors.Is(err, ErrRender) {
			t.Errorf("error = %v, want ErrRender", err)
		}
		if errors.Is(err, ErrParse) {
			t.Errorf("render failure must not be a parse failure: %v", err)
		}
	})

	t.Run("cancellation surfaces as context error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		runner := &fakeRunner{responses: []fakeResponse{
			{err: errors.New("signal: killed")},
		}}
		e := NewEngineWithRunner("", runner)

		_, err := e.Convert(ctx, "hello", TargetHTML, nil, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
		if errors.Is(err, ErrParse) {
			t.Errorf("cancellation must not look like a parse failure: %v", err)
		}
	})
}
