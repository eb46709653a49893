package pastemd

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/pastemd/pastemd/internal/fileutil"
)

// Sink receives a finished conversion result. Write must behave
// atomically from the caller's point of view: either the full payload
// lands or nothing does.
type Sink interface {
	Write(result *Result) error
}

// FileSink writes the payload to a file path via temp-file-and-rename,
// so a failed job never leaves a partial document behind.
type FileSink struct {
	Path string
}

func (f *FileSink) Write(result *Result) error {
	if err := fileutil.WriteFileAtomic(f.Path, result.Payload, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return nil
}

// ClipboardSink places textual payloads on the system clipboard.
// The clipboard here is plain-text only; the rich and plain buffers of a
// platform clipboard are a platform-integration concern, which is why
// Result carries the Plain fallback separately. Binary payloads (docx)
// are rejected: route those through a FileSink.
type ClipboardSink struct{}

func (c *ClipboardSink) Write(result *Result) error {
	if result.Binary {
		return fmt.Errorf("%w: %s output belongs in a file", ErrBinaryPayload, result.Format)
	}
	if err := clipboard.WriteAll(string(result.Payload)); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

// ClipboardAvailable reports whether the platform clipboard is usable.
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}
