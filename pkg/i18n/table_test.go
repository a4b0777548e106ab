package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextResolvesKnownLocale(t *testing.T) {
	table := NewTable("ru")

	assert.Equal(t, "Да", table.Text("ru", KeyBtnYes))
	assert.Equal(t, "Ha", table.Text("uz", KeyBtnYes))
}

func TestTextFallsBackToDefaultLocale(t *testing.T) {
	table := NewTable("ru")

	got := table.Text("de", KeyBtnYes)
	assert.Equal(t, "Да", got)
}

func TestTextReturnsRawKeyWhenUnresolved(t *testing.T) {
	table := NewTable("ru")

	assert.Equal(t, "no_such_key", table.Text("ru", "no_such_key"))
	assert.Equal(t, "no_such_key", table.Text("de", "no_such_key"))
}

func TestUnknownDefaultLocaleFallsBackToRu(t *testing.T) {
	table := NewTable("fr")

	assert.Equal(t, "ru", table.Default())
}

func TestModulesCatalogKeepsOrder(t *testing.T) {
	table := NewTable("ru")

	catalog := table.Modules("ru")
	require.Len(t, catalog, 6)
	assert.Equal(t, "client_bot", catalog[0].Code)
	assert.Equal(t, "reports", catalog[5].Code)
}

func TestModulesFallsBackToDefaultCatalog(t *testing.T) {
	table := NewTable("ru")

	catalog := table.Modules("de")
	require.NotEmpty(t, catalog)
	assert.Equal(t, table.Modules("ru"), catalog)
}

func TestModuleLabelUnknownCodeReturnsCode(t *testing.T) {
	table := NewTable("ru")

	assert.Equal(t, "Платежи/Инвойсы", table.ModuleLabel("ru", "payments"))
	assert.Equal(t, "mystery", table.ModuleLabel("ru", "mystery"))
}

func TestLoadFileMergesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locales.yaml")
	content := `
locales:
  ru:
    strings:
      thanks: "Спасибо за помощь!"
  en:
    strings:
      btn_yes: "Yes"
    modules:
      - code: client_bot
        label: "Client bot"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table := NewTable("ru")
	require.NoError(t, table.LoadFile(path))

	assert.Equal(t, "Спасибо за помощь!", table.Text("ru", KeyThanks))
	// Untouched keys survive the merge.
	assert.Equal(t, "Да", table.Text("ru", KeyBtnYes))
	assert.Equal(t, "Yes", table.Text("en", KeyBtnYes))
	assert.Equal(t, "Client bot", table.ModuleLabel("en", "client_bot"))
}

func TestLoadFileRejectsInvalidCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locales.yaml")
	content := `
locales:
  ru:
    modules:
      - code: ""
        label: "Broken"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table := NewTable("ru")
	err := table.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no code")
}

func TestStoreResolvesFallbackAndOverride(t *testing.T) {
	store := NewStore("ru")

	assert.Equal(t, "ru", store.Resolve(7))
	store.Set(7, "uz")
	assert.Equal(t, "uz", store.Resolve(7))
	assert.Equal(t, "ru", store.Resolve(8))
}
