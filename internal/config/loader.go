package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DataDirName is the per-user directory under $HOME for scores, logs and
// configuration.
const DataDirName = ".blocktui"

const rulesFile = "rules.yaml"

// Load loads the rules.
// Search order: customPath -> ~/.blocktui/rules.yaml -> ./configs/rules.yaml -> embedded default.
// Files only need to mention the keys they change; everything else keeps its
// default. The result is validated.
func Load(customPath string) (Rules, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (Rules, error) {
	cfg := embeddedRules()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{UserPath(rulesFile), filepath.Join("configs", rulesFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		overlay := cfg
		if err := yaml.Unmarshal(data, &overlay); err == nil {
			return overlay, nil
		}
	}
	return cfg, nil
}

// embeddedRules parses the embedded YAML, falling back to DefaultRules.
func embeddedRules() Rules {
	var cfg Rules
	if err := yaml.Unmarshal(defaultRulesYAML, &cfg); err != nil {
		return DefaultRules()
	}
	return cfg
}

// UserPath returns a path inside ~/.blocktui, or empty if home is unavailable.
func UserPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DataDirName, name)
}

// Marshal renders rules as YAML.
func Marshal(r Rules) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode rules: %w", err)
	}
	return data, nil
}
