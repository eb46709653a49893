package pastemd

import (
	"fmt"
	"strings"
	"time"

	"github.com/pastemd/pastemd/internal/rules"
)

// Format selects the target document kind.
type Format string

const (
	// FormatWord produces a Word-compatible document (docx bytes).
	FormatWord Format = "word"
	// FormatExcelTable produces a spreadsheet-pasteable HTML table
	// fragment with a TSV plain-text companion.
	FormatExcelTable Format = "excel"
	// FormatHTML produces a rich-text HTML fragment.
	FormatHTML Format = "html"
)

// ParseFormat maps a user-supplied format name to a Format.
// Matching is case-insensitive and accepts common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word", "docx":
		return FormatWord, nil
	case "excel", "excel-table", "table":
		return FormatExcelTable, nil
	case "html", "rich-text":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q (must be word, excel, or html)", ErrInvalidFormat, s)
	}
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatWord, FormatExcelTable, FormatHTML:
		return true
	}
	return false
}

// Input contains conversion parameters for one job.
type Input struct {
	Markdown      string // Markdown content (required)
	Format        Format // Target format (required)
	ReferenceDocx string // Style template for Word output (optional)
}

// Result is a successful conversion outcome.
type Result struct {
	Format  Format
	Payload []byte // Serialized document: docx bytes or an HTML fragment
	Plain   string // Plain-text fallback carried alongside the rich payload
	Binary  bool   // True when Payload is not text (docx)
}

// Rule is a single rewrite rule: a regular-expression pattern and its
// replacement, applied to math expressions in configured order.
type Rule = rules.Rule

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout    time.Duration
	enginePath string
	ruleFile   string
	ruleList   []Rule
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-job conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pastemd: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithEnginePath points the service at a specific pandoc binary.
// Empty means "pandoc" resolved via PATH.
func WithEnginePath(path string) Option {
	return func(s *Service) {
		s.cfg.enginePath = path
	}
}

// WithRules replaces the embedded default correction rules.
// The list compiles during New; a malformed pattern fails New with
// ErrRuleConfig.
func WithRules(rs []Rule) Option {
	return func(s *Service) {
		s.cfg.ruleList = rs
	}
}

// WithRuleFile loads correction rules from a YAML file during New.
// Takes precedence over WithRules when both are given.
func WithRuleFile(path string) Option {
	return func(s *Service) {
		s.cfg.ruleFile = path
	}
}
