// Package pastemd converts Markdown to rich document formats (Word,
// spreadsheet tables, HTML rich text) with a LaTeX syntax-correction
// pass, so pasted formulas survive engines that reject constructs like
// \kern spacing.
//
// # Quick Start
//
// Create a service and convert:
//
//	svc, err := pastemd.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := svc.Convert(ctx, pastemd.Input{
//	    Markdown: "# Notes\n\nInline $\\kern 10pt x$ math.",
//	    Format:   pastemd.FormatWord,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("notes.docx", result.Payload, 0644)
//
// Or deliver straight to a sink:
//
//	_, err = svc.Deliver(ctx, input, &pastemd.ClipboardSink{})
//
// # Conversion Pipeline
//
// A job runs through these stages:
//
//  1. Markdown normalization (line endings, \[..\] to $$..$$ delimiters)
//  2. Engine parse to the document AST (external pandoc binary)
//  3. Syntax correction of every math node via ordered rewrite rules
//  4. Serialization by the target writer (docx or HTML fragment)
//  5. Delivery to a sink (file or clipboard)
//
// The excel target is produced locally from the first Markdown table and
// requires one to be present.
//
// # Correction Rules
//
// Rules are ordered (pattern, replacement) pairs applied sequentially to
// each math expression. The embedded defaults rewrite \kern spacing to
// \qquad; custom sets load from YAML:
//
//	svc, err := pastemd.New(pastemd.WithRuleFile("rules.yaml"))
//
// Rule errors surface from New, never per job, and the filter itself
// never fails: expressions no rule matches pass through untouched.
//
// # Engine Requirements
//
// Conversion requires pandoc (https://pandoc.org). Point the service at a
// specific binary with WithEnginePath; a missing binary is reported as
// ErrEngineMissing. Use ServicePool to bound concurrent jobs.
package pastemd
