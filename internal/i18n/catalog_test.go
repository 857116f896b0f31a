package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jmylchreest/edgeui/internal/model"
)

func newTestCatalog(t *testing.T, dir string) *Catalog {
	t.Helper()
	c := NewCatalog(dir, nil)
	c.AddLocales(model.SupportedLocales)
	c.SetFallback(model.LocaleDE)
	c.Use(model.LocaleDE)
	return c
}

func TestEmbeddedCatalogsExistForEveryLocale(t *testing.T) {
	for _, l := range model.SupportedLocales {
		data, ok := getEmbeddedCatalog(string(l))
		require.True(t, ok, "missing catalog for %s", l)
		msgs, err := Parse(data)
		require.NoError(t, err)
		assert.NotEmpty(t, msgs)
	}
}

func TestCatalog_Translate(t *testing.T) {
	c := newTestCatalog(t, "")

	assert.Equal(t, "Abgemeldet", c.T("session.token_removed"))

	c.Use(model.LocaleEN)
	assert.Equal(t, model.LocaleEN, c.Active())
	assert.Equal(t, "Logged out", c.T("session.token_removed"))

	c.Use(model.LocaleCZ)
	assert.Equal(t, "Odhlášeno", c.T("session.token_removed"))
}

func TestCatalog_FallbackAndMissingKey(t *testing.T) {
	c := newTestCatalog(t, "")
	c.Use(model.LocaleCZ)

	// Missing from the Czech catalog, present in the German fallback
	assert.Equal(t, "Unerwarteter Fehler: boom", c.T("errors.unexpected", "boom"))
	assert.True(t, c.Has("errors.unexpected"))

	assert.Equal(t, "no.such.key", c.T("no.such.key"))
	assert.False(t, c.Has("no.such.key"))
}

func TestCatalog_NumberArgsUseLocale(t *testing.T) {
	c := newTestCatalog(t, "")

	assert.Equal(t, "Erzeugte Energie: 12.345 Wh", c.T("sample.energy", 12345))

	c.Use(model.LocaleEN)
	assert.Equal(t, "Energy produced: 12,345 Wh", c.T("sample.energy", 12345))
}

func TestCatalog_DirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	content := "session:\n  token_removed: Bye\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte(content), 0644))

	c := newTestCatalog(t, dir)
	c.Use(model.LocaleEN)
	assert.Equal(t, "Bye", c.T("session.token_removed"))
	// Key absent from the override resolves through the fallback
	assert.Equal(t, "Sitzung gespeichert", c.T("session.token_set"))

	// No override for German: bundled catalog is used
	c.Use(model.LocaleDE)
	assert.Equal(t, "Abgemeldet", c.T("session.token_removed"))
}

func TestCatalog_BrokenOverrideFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte("session: [unclosed"), 0644))

	c := newTestCatalog(t, dir)
	c.Use(model.LocaleEN)
	assert.Equal(t, "Abgemeldet", c.T("session.token_removed"))
}

func TestParse_Flattens(t *testing.T) {
	msgs, err := Parse([]byte("a:\n  b:\n    c: deep\n  n: 3\nempty:\n"))
	require.NoError(t, err)
	assert.Equal(t, "deep", msgs["a.b.c"])
	assert.Equal(t, "3", msgs["a.n"])
	_, ok := msgs["empty"]
	assert.False(t, ok)
}

func TestTag(t *testing.T) {
	assert.Equal(t, language.German, Tag(model.LocaleDE))
	assert.Equal(t, language.English, Tag(model.LocaleEN))
	assert.Equal(t, language.Czech, Tag(model.LocaleCZ))
	assert.Equal(t, language.Und, Tag("fr"))
}
