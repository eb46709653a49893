package pastemd

import (
	"errors"

	"github.com/pastemd/pastemd/internal/pandoc"
	"github.com/pastemd/pastemd/internal/rules"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown      = errors.New("markdown content cannot be empty")
	ErrInvalidFormat      = errors.New("invalid target format")
	ErrUnsupportedContent = errors.New("source has no content for the target format")
	ErrSinkWrite          = errors.New("output sink write failed")
	ErrBinaryPayload      = errors.New("sink cannot accept a binary payload")

	// Aliases of the internal sentinels so callers match the whole
	// taxonomy with errors.Is against this package alone.

	// ErrEngineMissing means the external conversion engine is not
	// installed or reachable.
	ErrEngineMissing = pandoc.ErrEngineMissing
	// ErrParse means the engine could not parse the input markdown.
	ErrParse = pandoc.ErrParse
	// ErrRender means the engine's target writer failed.
	ErrRender = pandoc.ErrRender
	// ErrRuleConfig means a configured rewrite rule is malformed.
	// Detected when the service is created, never per job.
	ErrRuleConfig = rules.ErrRuleConfig
)
