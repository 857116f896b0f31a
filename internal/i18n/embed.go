package i18n

import (
	"embed"
)

// EmbeddedCatalogs contains the bundled translation files, one per locale.
//
//go:embed catalogs/*.yaml
var EmbeddedCatalogs embed.FS

// getEmbeddedCatalog returns the bundled YAML for a locale.
func getEmbeddedCatalog(name string) ([]byte, bool) {
	data, err := EmbeddedCatalogs.ReadFile("catalogs/" + name + ".yaml")
	if err != nil {
		return nil, false
	}
	return data, true
}
