package codegen

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed selfhealing_imports.yaml
var selfHealingImportsYAML []byte

var (
	selfHealingImportsOnce sync.Once
	selfHealingImports     map[string]string
)

// LoadSelfHealingImports returns the curated symbol-name→import-path table
// consulted by the Healer's add_missing_import fix, grounded on
// blueprint_language/prompt_loader.py's centralized-template approach —
// adapted here from prompt template composition to a small curated lookup
// table, loaded once from an embedded YAML file rather than hardcoded in
// source.
func LoadSelfHealingImports() map[string]string {
	selfHealingImportsOnce.Do(func() {
		selfHealingImports = map[string]string{}
		_ = yaml.Unmarshal(selfHealingImportsYAML, &selfHealingImports)
	})
	return selfHealingImports
}
