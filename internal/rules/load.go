package rules

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/pastemd/pastemd/internal/yamlutil"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// defaultSet compiles the embedded rules lazily, exactly once.
var defaultSet = sync.OnceValue(func() *Set {
	rs, err := parse(defaultsYAML)
	if err != nil {
		panic("rules: embedded defaults: " + err.Error())
	}
	return MustCompile(rs)
})

// Default returns the embedded default rule set.
// The set is compiled once and shared; it is immutable and safe to share.
func Default() *Set {
	return defaultSet()
}

// Load reads an ordered rule list from a YAML file and compiles it.
// The file is a YAML sequence of {pattern, replacement} mappings; document
// order is the application order.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	rs, err := parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(rs)
}

// parse decodes a YAML rule list, rejecting unknown fields so typos in
// rule files surface at load time.
func parse(data []byte) ([]Rule, error) {
	var rs []Rule
	if err := yamlutil.UnmarshalStrict(data, &rs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRuleConfig, err)
	}
	return rs, nil
}
