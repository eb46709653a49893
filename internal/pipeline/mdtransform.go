package pipeline

import (
	"context"
	"regexp"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Bracket-style math delimiters: \[...\] and \(...\)
	displayDelim = regexp.MustCompile(`(?s)\\\[(.*?)\\\]`)
	inlineDelim  = regexp.MustCompile(`\\\((.*?)\\\)`)
)

// MarkdownNormalizer defines the contract for markdown normalization.
type MarkdownNormalizer interface {
	Normalize(ctx context.Context, content string) string
}

// CommonMarkNormalizer applies transformations before the engine parses
// the markdown.
type CommonMarkNormalizer struct{}

// Normalize applies all transformations in order: line endings first,
// then delimiter conversion, then spacing cleanup.
func (n *CommonMarkNormalizer) Normalize(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = ConvertLatexDelimiters(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// ConvertLatexDelimiters rewrites bracket-style math delimiters to
// dollar-style ones the engine's markdown reader recognizes:
// \[...\] becomes $$...$$ and \(...\) becomes $...$.
// Chat-oriented tools emit the bracket forms, which pandoc's default
// markdown reader does not treat as math.
func ConvertLatexDelimiters(content string) string {
	content = displayDelim.ReplaceAllString(content, `$$$$$1$$$$`)
	content = inlineDelim.ReplaceAllString(content, `$$$1$$`)
	return content
}
