package llm

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Prompt is one catalog entry.
type Prompt struct {
	Template            string `yaml:"template"`
	MaxTokens           int    `yaml:"max_tokens"`
	JSON                bool   `yaml:"json"`
	Instruction         string `yaml:"instruction"`
	InstructionPreserve string `yaml:"instruction_preserve"`
}

// Catalog maps operation names to prompts.
type Catalog map[string]Prompt

var (
	catalogOnce sync.Once
	catalog     Catalog
	catalogErr  error
)

// ParseCatalog decodes a YAML prompt catalog.
func ParseCatalog(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	for name, p := range c {
		if strings.TrimSpace(p.Template) == "" {
			return nil, fmt.Errorf("prompt %q has no template", name)
		}
		if p.MaxTokens <= 0 {
			return nil, fmt.Errorf("prompt %q has no max_tokens", name)
		}
	}
	return c, nil
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (Catalog, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = ParseCatalog(promptsYAML)
	})
	return catalog, catalogErr
}

// Lookup returns the named prompt.
func (c Catalog) Lookup(name string) (Prompt, error) {
	p, ok := c[name]
	if !ok {
		return Prompt{}, fmt.Errorf("prompt %q not found", name)
	}
	return p, nil
}

// Render substitutes {{key}} placeholders in the template.
func (p Prompt) Render(vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(p.Template)
}
