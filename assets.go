package pmsform

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/goliatone/go-pmsform/pkg/catalog"
	htmlrenderer "github.com/goliatone/go-pmsform/pkg/renderers/html"
)

// DefaultCatalogFile is the name of the bundled catalog inside CatalogFS.
const DefaultCatalogFile = "pms.yaml"

//go:embed catalogs/*.yaml
var embeddedCatalogs embed.FS

// CatalogFS exposes the bundled catalog documents so callers can copy or
// extend them.
func CatalogFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalogs, "catalogs")
	if err != nil {
		return embeddedCatalogs
	}
	return sub
}

var (
	defaultOnce    sync.Once
	defaultCatalog catalog.Catalog
	defaultErr     error
)

// DefaultCatalog returns the bundled PMS requirements questionnaire. The
// document is parsed once and validated on first use.
func DefaultCatalog() (catalog.Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = catalog.LoadFS(CatalogFS(), DefaultCatalogFile)
	})
	return defaultCatalog, defaultErr
}

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or override them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return htmlrenderer.TemplatesFS()
}
