// Package pandoc drives the external pandoc binary as the document
// conversion engine. Markdown is parsed to pandoc's JSON AST, math nodes
// are rewritten through a caller-supplied hook, and the corrected AST is
// fed back to pandoc's target writer.
package pandoc

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner abstracts command execution to enable testing without
// real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) (stdout []byte, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.String(), err
}
