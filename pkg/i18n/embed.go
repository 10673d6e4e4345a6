package i18n

import (
	_ "embed"
	"sync"
)

//go:embed messages.yaml
var defaultMessages []byte

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseYAML(defaultMessages)
})

// Default returns the built-in catalog of validation messages (English and
// German). Without options the catalog is built once and shared.
func Default(opts ...Option) (*Catalog, error) {
	if len(opts) == 0 {
		return defaultCatalog()
	}
	return ParseYAML(defaultMessages, opts...)
}
