package binding

import (
	"go.uber.org/zap"

	"xmlbind/internal/inflect"
	"xmlbind/naming"
)

// Inflector derives the plural form used for automatic wrapper discovery.
type Inflector interface {
	Pluralize(word string) string
}

// Config carries the per-class settings every reference of a class shares.
// The zero value is usable: no naming convention, the built-in inflector,
// no namespace and a no-op logger.
type Config struct {
	Convention naming.Convention
	Inflector  Inflector
	// Namespace is the class-level namespace prefix, or "*" for any.
	Namespace string
	// Namespaces maps prefixes used in paths to namespace URIs.
	Namespaces map[string]string
	Logger     *zap.Logger
}

func (c Config) inflector() Inflector {
	if c.Inflector == nil {
		return inflect.Inflector{}
	}

	return c.Inflector
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}

	return c.Logger
}
