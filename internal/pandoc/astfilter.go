package pandoc

import (
	"encoding/json"
	"fmt"
)

// MathRewriter rewrites a single math expression. display is true for
// block-level (DisplayMath) expressions, false for inline ones. The hook
// must be pure: it may not fail, and it may only return a new payload.
type MathRewriter func(expr string, display bool) string

// RewriteMath walks a pandoc JSON AST and applies the rewriter to every
// math node payload, inline and display alike. Only the payload string is
// touched; the display tag and all other nodes are preserved exactly.
//
// The walk is structural rather than schema-bound: it recurses through
// generic maps and arrays, so it keeps working across pandoc API versions
// as long as math nodes keep the {"t":"Math","c":[kind, text]} shape.
func RewriteMath(doc []byte, rewrite MathRewriter) ([]byte, error) {
	var root any
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("decoding engine AST: %w", err)
	}

	walkValue(root, rewrite)

	out, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("encoding engine AST: %w", err)
	}
	return out, nil
}

// walkValue recurses through the AST, rewriting math payloads in place.
func walkValue(v any, rewrite MathRewriter) {
	switch val := v.(type) {
	case map[string]any:
		if tag, _ := val["t"].(string); tag == "Math" {
			rewriteMathNode(val, rewrite)
			return
		}
		for _, child := range val {
			walkValue(child, rewrite)
		}
	case []any:
		for _, child := range val {
			walkValue(child, rewrite)
		}
	}
}

// rewriteMathNode applies the hook to one math node. Nodes that do not
// have the expected [kind, payload] content are left untouched.
func rewriteMathNode(node map[string]any, rewrite MathRewriter) {
	content, ok := node["c"].([]any)
	if !ok || len(content) != 2 {
		return
	}
	payload, ok := content[1].(string)
	if !ok {
		return
	}

	display := false
	if kind, ok := content[0].(map[string]any); ok {
		display = kind["t"] == "DisplayMath"
	}

	content[1] = rewrite(payload, display)
}
