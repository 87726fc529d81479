package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Aashish23092/supplier-doc-extractor/utils/policy"
)

// LoadPolicy returns the compiled extraction policy. Without a path the
// built-in defaults are used; otherwise the YAML file overrides the fields it
// sets and keeps the defaults for the rest.
func LoadPolicy(path string) (*policy.Compiled, error) {
	p := policy.Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read policy file: %w", err)
		}
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse policy file %s: %w", path, err)
		}
	}

	compiled, err := p.Compile()
	if err != nil {
		return nil, fmt.Errorf("invalid extraction policy: %w", err)
	}
	return compiled, nil
}
