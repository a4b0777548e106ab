package i18n

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type localesFile struct {
	Locales map[string]*Locale `yaml:"locales"`
}

// LoadFile merges a YAML locales file over the built-in tables. Strings are
// merged key by key; a non-empty module list replaces the built-in catalog
// for that locale. New locale codes are added wholesale.
func (t *Table) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read locales file '%s': %w", path, err)
	}

	var parsed localesFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("failed to unmarshal YAML from '%s': %w", path, err)
	}
	if len(parsed.Locales) == 0 {
		return fmt.Errorf("locales file '%s' defines no locales", path)
	}

	for code, override := range parsed.Locales {
		if err := validateOverride(code, override); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for code, override := range parsed.Locales {
		existing, ok := t.locales[code]
		if !ok {
			t.locales[code] = cloneLocale(override)
			continue
		}
		for k, v := range override.Strings {
			existing.Strings[k] = v
		}
		if len(override.Modules) > 0 {
			existing.Modules = append([]Module(nil), override.Modules...)
		}
	}
	return nil
}

func validateOverride(code string, loc *Locale) error {
	if loc == nil {
		return fmt.Errorf("locales validation failed: locale '%s' is empty", code)
	}
	for i, m := range loc.Modules {
		if m.Code == "" {
			return fmt.Errorf("locales validation failed: module #%d in locale '%s' has no code", i+1, code)
		}
		if m.Label == "" {
			return fmt.Errorf("locales validation failed: module '%s' in locale '%s' has no label", m.Code, code)
		}
	}
	return nil
}
