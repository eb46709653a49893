package main

import (
	"context"
	"errors"
	"os"

	pastemd "github.com/pastemd/pastemd"
	"github.com/pastemd/pastemd/internal/config"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitIO      = 3
	ExitEngine  = 4
)

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, pastemd.ErrEngineMissing),
		errors.Is(err, pastemd.ErrParse),
		errors.Is(err, pastemd.ErrRender):
		return ExitEngine
	case errors.Is(err, pastemd.ErrSinkWrite),
		errors.Is(err, pastemd.ErrBinaryPayload),
		errors.Is(err, errReadMarkdown),
		errors.Is(err, errWriteOutput),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIO
	case errors.Is(err, pastemd.ErrInvalidFormat),
		errors.Is(err, pastemd.ErrEmptyMarkdown),
		errors.Is(err, pastemd.ErrUnsupportedContent),
		errors.Is(err, pastemd.ErrRuleConfig),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrInvalidFormat),
		errors.Is(err, errUsage):
		return ExitUsage
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return ExitGeneral
	default:
		return ExitGeneral
	}
}
