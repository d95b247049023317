package loader

import (
	"path"
	"strings"

	"github.com/zishang520/engine.io/types"
)

var imageExtensions = types.NewSet("jpg", "jpeg", "gif", "png", "svg", "bmp")

// resolveKind infers the resource kind from the URL's path extension,
// query and fragment stripped first. Anything unrecognized is json.
func resolveKind(uri string) string {
	p := uri
	if i := strings.IndexAny(p, "?#"); i > -1 {
		p = p[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))

	switch {
	case ext == "html":
		return HTML
	case ext == "css":
		return CSS
	case imageExtensions.Has(ext):
		return Image
	case ext == "js":
		return Script
	case ext == "mjs":
		return Module
	case ext == "xml":
		return XML
	default:
		return JSON
	}
}
