package loader

import (
	"strings"

	"github.com/featherframe/feather-loader/config"
)

// loadModule imports the module's namespace. "#"-separated suffixes
// narrow the result: none returns the whole namespace, one selects the
// value at that property path, several pick the named top-level exports.
func (l *Loader) loadModule(opts config.RequestOptionsInterface) (any, error) {
	parts := strings.Split(opts.Url(), "#")
	namespace, err := l.doc.ImportModule(parts[0])
	if err != nil {
		return nil, err
	}

	suffixes := parts[1:]
	switch len(suffixes) {
	case 0:
		return namespace, nil
	case 1:
		return propertyPath(namespace, suffixes[0]), nil
	default:
		picked := make(map[string]any, len(suffixes))
		for _, name := range suffixes {
			picked[name] = namespace[name]
		}
		return picked, nil
	}
}

// propertyPath walks a dotted path through nested maps; a miss yields nil.
func propertyPath(namespace map[string]any, path string) any {
	var current any = namespace
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[part]
	}
	return current
}
