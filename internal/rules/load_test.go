package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	set := Default()
	if set.Len() != 2 {
		t.Fatalf("default set has %d rules, want 2", set.Len())
	}

	// Brace-wrapped spelling must come before the bare spelling.
	rs := set.Rules()
	if rs[0].Pattern != `\{\\kern\s+[0-9]+pt\}` {
		t.Errorf("first rule pattern = %q", rs[0].Pattern)
	}

	// Default() returns the same shared set every time.
	if Default() != set {
		t.Error("Default() must return the shared set")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("valid file preserves order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := `- pattern: 'first'
  replacement: 'one'
- pattern: 'second'
  replacement: 'two'
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		set, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		rs := set.Rules()
		if len(rs) != 2 || rs[0].Pattern != "first" || rs[1].Pattern != "second" {
			t.Errorf("Rules() = %v, want document order preserved", rs)
		}
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := `- pattern: '(unclosed'
  replacement: 'x'
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := Load(path)
		if !errors.Is(err, ErrRuleConfig) {
			t.Errorf("error = %v, want ErrRuleConfig", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := `- pattern: 'x'
  replacment: 'typo'
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := Load(path)
		if !errors.Is(err, ErrRuleConfig) {
			t.Errorf("error = %v, want ErrRuleConfig", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}
