// Package pipeline contains the pure text-transform stages that run
// before the document engine sees the markdown: line-ending
// normalization, LaTeX delimiter conversion, and blank-line compression.
package pipeline
