package pastemd_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pastemd/pastemd"
)

// Convert markdown to a Word document and write it to disk.
func Example() {
	svc, err := pastemd.New()
	if err != nil {
		log.Fatal(err)
	}

	result, err := svc.Convert(context.Background(), pastemd.Input{
		Markdown: "# Notes\n\nInline $\\kern 10pt x$ math.",
		Format:   pastemd.FormatWord,
	})
	if err != nil {
		log.Fatal(err)
	}

	_ = os.WriteFile("notes.docx", result.Payload, 0o644)
}

// Deliver an HTML fragment straight to the system clipboard.
func Example_clipboard() {
	svc, err := pastemd.New()
	if err != nil {
		log.Fatal(err)
	}

	_, err = svc.Deliver(context.Background(), pastemd.Input{
		Markdown: "**bold** and *italic*",
		Format:   pastemd.FormatHTML,
	}, &pastemd.ClipboardSink{})
	if err != nil {
		log.Fatal(err)
	}
}

// Custom correction rules replace the embedded defaults.
func ExampleWithRules() {
	svc, err := pastemd.New(pastemd.WithRules([]pastemd.Rule{
		{Pattern: `\\mskip ([0-9]+)mu`, Replacement: `\hspace{$1mu}`},
	}))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(len(svc.Rules()))
	// Output: 1
}
