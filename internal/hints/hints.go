// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForEngineMissing returns hints for a missing pandoc binary.
func ForEngineMissing(configuredPath string) string {
	hints := []string{"install pandoc (https://pandoc.org/installing.html)"}
	if configuredPath == "" || configuredPath == "pandoc" {
		hints = append(hints, "or set engine.path in the config to an existing binary")
	} else {
		hints = append(hints, "or fix engine.path (currently "+configuredPath+")")
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the timeout for slow conversions.
func ForTimeout() string {
	return format("for large documents, use the --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/pastemd") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForNoTable returns a hint for the excel target precondition.
func ForNoTable() string {
	return format("the excel target needs at least one Markdown table (| a | b | rows)")
}

// ForClipboard returns a hint for clipboard write failures.
func ForClipboard() string {
	return format("on Linux, clipboard access needs xclip or xsel installed")
}

// format wraps a single hint.
func format(hint string) string {
	return "\n  hint: " + hint
}

// formatHints joins multiple hints, one per line.
func formatHints(hints []string) string {
	var b strings.Builder
	for _, h := range hints {
		b.WriteString(format(h))
	}
	return b.String()
}
