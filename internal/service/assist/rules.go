package assist

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"contractpad/internal/domain/models/docsystem"
	"contractpad/internal/domain/models/editing"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule is one literal find/replace review rule.
type Rule struct {
	ID          string           `yaml:"id"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Category    editing.Category `yaml:"category"`
	Impact      editing.Impact   `yaml:"impact"`
	Confidence  float64          `yaml:"confidence"`
	Kinds       []docsystem.Kind `yaml:"kinds"`
	Find        string           `yaml:"find"`
	Replace     string           `yaml:"replace"`
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// AppliesTo reports whether the rule is enabled for kind. No kinds means all.
func (r *Rule) AppliesTo(kind docsystem.Kind) bool {
	if len(r.Kinds) == 0 {
		return true
	}
	for _, k := range r.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// LoadRules reads the rule catalog at path, or the embedded catalog when
// path is empty.
func LoadRules(path string) ([]Rule, error) {
	data := defaultRules
	source := "embedded rules.yaml"
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rules file: %w", err)
		}
		source = path
	}
	return ParseRules(data, source)
}

// ParseRules decodes a rule catalog. Rule ids must be unique and every rule
// needs find text.
func ParseRules(data []byte, source string) ([]Rule, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", source, err)
	}

	seen := make(map[string]bool, len(file.Rules))
	for i, rule := range file.Rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("%s: rule %d has no id", source, i)
		}
		if seen[rule.ID] {
			return nil, fmt.Errorf("%s: duplicate rule id %q", source, rule.ID)
		}
		if rule.Find == "" {
			return nil, fmt.Errorf("%s: rule %q has no find text", source, rule.ID)
		}
		seen[rule.ID] = true
	}

	return file.Rules, nil
}
