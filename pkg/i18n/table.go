package i18n

import "sync"

// Module is one selectable product area shown in the multi-select step.
type Module struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

// Locale holds the prompt strings and the module catalog for one language.
type Locale struct {
	Strings map[string]string `yaml:"strings"`
	Modules []Module          `yaml:"modules"`
}

// Table maps locale codes to their string tables. Lookups fall back to the
// default locale and finally to the raw key, so a missing translation never
// breaks the flow.
type Table struct {
	mu            sync.RWMutex
	locales       map[string]*Locale
	defaultLocale string
}

// NewTable builds a table with the built-in locales and the given default.
// An unknown default falls back to "ru".
func NewTable(defaultLocale string) *Table {
	if _, ok := builtin[defaultLocale]; !ok {
		defaultLocale = "ru"
	}
	locales := make(map[string]*Locale, len(builtin))
	for code, loc := range builtin {
		locales[code] = cloneLocale(loc)
	}
	return &Table{
		locales:       locales,
		defaultLocale: defaultLocale,
	}
}

// Default returns the configured fallback locale code.
func (t *Table) Default() string {
	return t.defaultLocale
}

// Known reports whether the locale code has a table.
func (t *Table) Known(locale string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.locales[locale]
	return ok
}

// Text resolves a prompt string. Unknown locales resolve against the default
// locale; a key missing everywhere is returned verbatim.
func (t *Table) Text(locale, key string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if loc, ok := t.locales[locale]; ok {
		if s, ok := loc.Strings[key]; ok {
			return s
		}
	}
	if loc, ok := t.locales[t.defaultLocale]; ok {
		if s, ok := loc.Strings[key]; ok {
			return s
		}
	}
	return key
}

// Modules returns the ordered module catalog for the locale, falling back to
// the default locale's catalog.
func (t *Table) Modules(locale string) []Module {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if loc, ok := t.locales[locale]; ok && len(loc.Modules) > 0 {
		return loc.Modules
	}
	if loc, ok := t.locales[t.defaultLocale]; ok {
		return loc.Modules
	}
	return nil
}

// ModuleLabel resolves a module code to its display label, returning the
// code itself when the catalog does not know it.
func (t *Table) ModuleLabel(locale, code string) string {
	for _, m := range t.Modules(locale) {
		if m.Code == code {
			return m.Label
		}
	}
	return code
}

func cloneLocale(src *Locale) *Locale {
	dst := &Locale{
		Strings: make(map[string]string, len(src.Strings)),
		Modules: make([]Module, len(src.Modules)),
	}
	for k, v := range src.Strings {
		dst.Strings[k] = v
	}
	copy(dst.Modules, src.Modules)
	return dst
}
