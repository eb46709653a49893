package main

import (
	"fmt"
	"io"
)

const usageText = `pastemd converts Markdown to paste-ready document formats,
correcting LaTeX math syntax the document engine would reject.

Usage:
  pastemd convert [flags] [file ...]   convert files (or stdin) to a target format
  pastemd doctor  [flags]              check the engine, clipboard, and temp dir
  pastemd version                      print the version
  pastemd help                         show this help

Convert flags:
  -t, --to FORMAT           target format: word, excel, html (default: config, then word)
  -o, --out PATH            output file path (single input only)
      --clipboard           deliver to the system clipboard instead of a file
      --rules FILE          correction rule file (default: embedded rules)
      --reference-docx FILE style template for Word output
      --config FILE         config file path
      --timeout DURATION    per-job conversion timeout (default 30s)
  -w, --workers N           parallel conversions for batch input
  -q, --quiet               suppress progress output

Examples:
  pastemd convert report.md
  pastemd convert --to html --clipboard notes.md
  cat table.md | pastemd convert --to excel --clipboard
  pastemd convert --to word --workers 4 docs/*.md
`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
