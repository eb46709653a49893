// Package tabular extracts Markdown tables for the spreadsheet target.
// The markdown is parsed with goldmark's table extension; the first table
// found is rendered as an HTML fragment (what spreadsheet applications
// accept on paste) with a TSV plain-text companion.
package tabular

import (
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parser is goroutine-safe per goldmark's docs, so one instance serves
// all callers.
var parser = goldmark.New(goldmark.WithExtensions(extension.Table))

// Table holds the cell text of one Markdown table.
type Table struct {
	Header []string
	Rows   [][]string
}

// Extract parses markdown and returns its first table. The second return
// value is false when the source contains no table.
func Extract(markdown string) (*Table, bool) {
	source := []byte(markdown)
	doc := parser.Parser().Parse(text.NewReader(source))

	var tableNode *east.Table
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*east.Table); ok {
			tableNode = t
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if tableNode == nil {
		return nil, false
	}

	table := &Table{}
	for row := tableNode.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, cellText(cell, source))
		}
		if _, ok := row.(*east.TableHeader); ok {
			table.Header = cells
		} else {
			table.Rows = append(table.Rows, cells)
		}
	}

	table.pad()
	return table, true
}

// HasTable reports whether the markdown contains at least one table.
func HasTable(markdown string) bool {
	_, ok := Extract(markdown)
	return ok
}

// pad widens ragged rows to the header width so downstream consumers see
// a rectangular grid, matching how spreadsheet paste behaves.
func (t *Table) pad() {
	width := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if len(t.Header) < width {
		t.Header = append(t.Header, make([]string, width-len(t.Header))...)
	}
	for i, row := range t.Rows {
		if len(row) < width {
			t.Rows[i] = append(row, make([]string, width-len(row))...)
		}
	}
}

// HTML renders the table as an HTML fragment with escaped cell text.
func (t *Table) HTML() string {
	var b strings.Builder
	b.WriteString("<table>\n<thead>\n<tr>")
	for _, cell := range t.Header {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(cell))
		b.WriteString("</th>")
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
	return b.String()
}

// TSV renders the table as tab-separated values, one line per row.
// Tabs and newlines inside cells are flattened to spaces.
func (t *Table) TSV() string {
	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(flatten(cell))
		}
		b.WriteByte('\n')
	}
	writeRow(t.Header)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return b.String()
}

// flatten replaces characters that would break TSV structure.
func flatten(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, s)
}

// cellText collects the plain text of a table cell, recursing through
// inline markup (emphasis, code spans, links).
func cellText(n ast.Node, source []byte) string {
	var b strings.Builder
	collectText(n, source, &b)
	return strings.TrimSpace(b.String())
}

func collectText(n ast.Node, source []byte, b *strings.Builder) {
	switch node := n.(type) {
	case *ast.Text:
		b.Write(node.Segment.Value(source))
	case *ast.String:
		b.Write(node.Value)
	case *ast.AutoLink:
		b.Write(node.URL(source))
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		collectText(child, source, b)
	}
}
